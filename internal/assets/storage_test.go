package assets

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightline/catalogd/internal/domain"
)

func TestGenerateName(t *testing.T) {
	s := NewStorage(t.TempDir())

	t.Run("keeps the original extension", func(t *testing.T) {
		name, err := s.GenerateName(KindIcons, "logo.png")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, ".png"))
		assert.Len(t, name, 16+len(".png"))
	})

	t.Run("no extension", func(t *testing.T) {
		name, err := s.GenerateName(KindImages, "rawfile")
		require.NoError(t, err)
		assert.Len(t, name, 16)
	})

	t.Run("generated names never collide", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			name, err := s.GenerateName(KindImages, "photo.jpg")
			require.NoError(t, err)
			assert.False(t, s.Exists(KindImages, name))
			assert.False(t, seen[name])
			seen[name] = true
			require.NoError(t, s.CreateResource(KindImages, name, []byte("x")))
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := s.GenerateName("thumbnails", "a.png")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidAssetKind))
	})
}

func TestCreateResource(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir)

	t.Run("writes bytes", func(t *testing.T) {
		require.NoError(t, s.CreateResource(KindIcons, "a.png", []byte("icon-bytes")))
		assert.True(t, s.Exists(KindIcons, "a.png"))
	})

	t.Run("existing name conflicts", func(t *testing.T) {
		err := s.CreateResource(KindIcons, "a.png", []byte("other"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("unknown kind", func(t *testing.T) {
		err := s.CreateResource("videos", "a.mp4", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidAssetKind))
	})
}

func TestDeleteResource(t *testing.T) {
	s := NewStorage(t.TempDir())
	require.NoError(t, s.CreateResource(KindImages, "b.jpg", []byte("x")))

	require.NoError(t, s.DeleteResource(KindImages, "b.jpg"))
	assert.False(t, s.Exists(KindImages, "b.jpg"))

	// idempotent: deleting a missing file is a no-op
	require.NoError(t, s.DeleteResource(KindImages, "b.jpg"))

	err := s.DeleteResource("other", "b.jpg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidAssetKind))
}

func TestListResources(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir)

	names, err := s.ListResources(KindIcons)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, s.CreateResource(KindIcons, "one.png", []byte("1")))
	require.NoError(t, s.CreateResource(KindIcons, "two.png", []byte("2")))

	names, err = s.ListResources(KindIcons)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one.png", "two.png"}, names)

	// files land under the expected sub-path
	assert.Equal(t, filepath.Join(dir, "icons", "one.png"), s.path(KindIcons, "one.png"))
}

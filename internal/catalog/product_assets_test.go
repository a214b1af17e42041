package catalog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightline/catalogd/internal/assets"
	"github.com/brightline/catalogd/internal/domain"
)

func TestCreateProductIcon(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Widget", "1", "EUR")

	icon, err := env.manager.CreateProductIcon(testCtx(), p, "logo.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, icon.FileName)

	assert.True(t, env.storage.Exists(assets.KindIcons, icon.FileName))

	t.Run("second icon conflicts", func(t *testing.T) {
		_, err := env.manager.CreateProductIcon(testCtx(), p, "logo2.png", []byte("more"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("loaded with the product", func(t *testing.T) {
		loaded, err := env.manager.GetProduct(p.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.Icon)
		assert.Equal(t, icon.FileName, loaded.Icon.FileName)
	})
}

func TestDeleteProductIcon(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Widget", "1", "EUR")

	t.Run("missing icon", func(t *testing.T) {
		err := env.manager.DeleteProductIcon(testCtx(), p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("removes row and file", func(t *testing.T) {
		icon, err := env.manager.CreateProductIcon(testCtx(), p, "logo.png", []byte("png-bytes"))
		require.NoError(t, err)

		require.NoError(t, env.manager.DeleteProductIcon(testCtx(), p))

		var count int64
		require.NoError(t, env.db.Model(&domain.ProductIcon{}).
			Where("product_id = ?", p.ID).Count(&count).Error)
		assert.Zero(t, count)

		assert.False(t, env.storage.Exists(assets.KindIcons, icon.FileName))
	})
}

func TestProductImages(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Widget", "1", "EUR")

	first, err := env.manager.CreateProductImage(testCtx(), p, "front.jpg", []byte("jpg-1"))
	require.NoError(t, err)
	second, err := env.manager.CreateProductImage(testCtx(), p, "back.jpg", []byte("jpg-2"))
	require.NoError(t, err)
	assert.NotEqual(t, first.FileName, second.FileName)

	loaded, err := env.manager.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Images, 2)

	t.Run("delete one image", func(t *testing.T) {
		require.NoError(t, env.manager.DeleteProductImage(testCtx(), p, first.ID))

		loaded, err := env.manager.GetProduct(p.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Images, 1)
		assert.Equal(t, second.FileName, loaded.Images[0].FileName)

		assert.False(t, env.storage.Exists(assets.KindImages, first.FileName))
	})

	t.Run("delete missing image", func(t *testing.T) {
		err := env.manager.DeleteProductImage(testCtx(), p, 999999)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestReconcileOrphanedAssets(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Widget", "1", "EUR")

	icon, err := env.manager.CreateProductIcon(testCtx(), p, "logo.png", []byte("png"))
	require.NoError(t, err)
	img, err := env.manager.CreateProductImage(testCtx(), p, "front.jpg", []byte("jpg"))
	require.NoError(t, err)

	// files with no backing row, as left behind by a crash between the
	// row delete and the file delete
	require.NoError(t, env.storage.CreateResource(assets.KindIcons, "orphan1.png", []byte("x")))
	require.NoError(t, env.storage.CreateResource(assets.KindImages, "orphan2.jpg", []byte("y")))

	removed, err := env.manager.ReconcileOrphanedAssets()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	for _, tc := range []struct {
		kind string
		name string
		want bool
	}{
		{assets.KindIcons, icon.FileName, true},
		{assets.KindImages, img.FileName, true},
		{assets.KindIcons, "orphan1.png", false},
		{assets.KindImages, "orphan2.jpg", false},
	} {
		assert.Equal(t, tc.want, env.storage.Exists(tc.kind, tc.name), "%s/%s", tc.kind, tc.name)
	}

	t.Run("dangling row clears via idempotent file delete", func(t *testing.T) {
		// simulate the file half of the icon already being gone
		require.NoError(t, env.storage.DeleteResource(assets.KindIcons, icon.FileName))
		require.NoError(t, env.manager.DeleteProductIcon(testCtx(), p))
	})
}

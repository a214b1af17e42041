package catalog

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightline/catalogd/internal/domain"
)

func TestCategoryService(t *testing.T) {
	env := newTestEnv(t)
	svc := env.manager.Categories()

	t.Run("create twice conflicts", func(t *testing.T) {
		_, err := svc.Create(testCtx(), "Tools")
		require.NoError(t, err)

		_, err = svc.Create(testCtx(), "Tools")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("get or create is idempotent", func(t *testing.T) {
		first, err := svc.GetOrCreate(testCtx(), "Featured")
		require.NoError(t, err)
		second, err := svc.GetOrCreate(testCtx(), "Featured")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("rename", func(t *testing.T) {
		c, err := svc.Create(testCtx(), "Tmp")
		require.NoError(t, err)
		require.NoError(t, svc.Rename(testCtx(), c.ID, "Renamed"))

		got, err := svc.GetByID(c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})

	t.Run("rename collision conflicts", func(t *testing.T) {
		c, err := svc.Create(testCtx(), "Other")
		require.NoError(t, err)

		err = svc.Rename(testCtx(), c.ID, "Tools")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("missing lookups", func(t *testing.T) {
		_, err := svc.GetByID(999999)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		_, err = svc.GetByName("nope")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		err = svc.Delete(testCtx(), 999999)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("delete", func(t *testing.T) {
		c, err := svc.Create(testCtx(), "Doomed")
		require.NoError(t, err)
		require.NoError(t, svc.Delete(testCtx(), c.ID))
		_, err = svc.GetByID(c.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestCategoryList(t *testing.T) {
	env := newTestEnv(t)
	svc := env.manager.Categories()

	for _, name := range []string{"Zebra", "Apple", "Mango"} {
		_, err := svc.Create(testCtx(), name)
		require.NoError(t, err)
	}

	rows, total, err := svc.List(1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Apple", rows[0].Name)
	assert.Equal(t, "Mango", rows[1].Name)

	rows, _, err = svc.List(2, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Zebra", rows[0].Name)
}

func TestAttributeService(t *testing.T) {
	env := newTestEnv(t)
	svc := env.manager.Attributes()

	t.Run("create twice conflicts", func(t *testing.T) {
		_, err := svc.Create(testCtx(), "Color")
		require.NoError(t, err)

		_, err = svc.Create(testCtx(), "Color")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("rename collision conflicts", func(t *testing.T) {
		a, err := svc.Create(testCtx(), "Weight")
		require.NoError(t, err)

		err = svc.Rename(testCtx(), a.ID, "Color")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("list", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := svc.Create(testCtx(), fmt.Sprintf("Extra %d", i))
			require.NoError(t, err)
		}
		rows, total, err := svc.List(1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Len(t, rows, 5)
	})
}

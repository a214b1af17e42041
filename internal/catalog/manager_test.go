package catalog

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightline/catalogd/internal/domain"
)

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	t.Run("defaults", func(t *testing.T) {
		p, err := env.manager.CreateProduct(testCtx(), CreateProductInput{
			Name:        "Widget",
			Description: "A widget",
			Price:       "100",
		})
		require.NoError(t, err)
		assert.True(t, p.Active)
		assert.Equal(t, "EUR", p.PriceCurrency)
		assert.False(t, p.CreatedAt.IsZero())
		assert.False(t, p.UpdatedAt.IsZero())
	})

	t.Run("currency upper-cased", func(t *testing.T) {
		p, err := env.manager.CreateProduct(testCtx(), CreateProductInput{
			Name: "Gadget", Price: "5", Currency: "usd",
		})
		require.NoError(t, err)
		assert.Equal(t, "USD", p.PriceCurrency)
	})

	t.Run("resolves categories and attributes by name", func(t *testing.T) {
		p, err := env.manager.CreateProduct(testCtx(), CreateProductInput{
			Name:       "Gizmo",
			Price:      "9.99",
			Categories: []string{"Tools", "Featured"},
			Attributes: []AttributeSpec{{Name: "Color", Value: "Red"}, {Name: "Weight", Value: 2.5}},
		})
		require.NoError(t, err)

		loaded, err := env.manager.GetProduct(p.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.Categories, 2)
		assert.Len(t, loaded.Attributes, 2)

		// vocabulary entries were created on first use
		c, err := env.manager.Categories().GetByName("Tools")
		require.NoError(t, err)
		assert.Equal(t, "Tools", c.Name)
	})

	t.Run("invalid price", func(t *testing.T) {
		_, err := env.manager.CreateProduct(testCtx(), CreateProductInput{Name: "X", Price: "abc"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := env.manager.CreateProduct(testCtx(), CreateProductInput{Name: "  ", Price: "1"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestEditProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Widget", "100", "USD")

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		name := "Widget Pro"
		cur := "gbp"
		require.NoError(t, env.manager.EditProduct(testCtx(), p.ID, EditProductInput{
			Name:     &name,
			Currency: &cur,
		}))

		got, err := env.manager.GetProduct(p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Widget Pro", got.Name)
		assert.Equal(t, "GBP", got.PriceCurrency)
		assert.Equal(t, "100", got.Price)
	})

	t.Run("invalid price rejected", func(t *testing.T) {
		bad := "not-a-number"
		err := env.manager.EditProduct(testCtx(), p.ID, EditProductInput{Price: &bad})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("missing product", func(t *testing.T) {
		err := env.manager.EditProduct(testCtx(), 999999, EditProductInput{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing product", func(t *testing.T) {
		err := env.manager.DeleteProduct(testCtx(), 999999)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("removes association rows", func(t *testing.T) {
		p, err := env.manager.CreateProduct(testCtx(), CreateProductInput{
			Name:       "Doomed",
			Price:      "1",
			Categories: []string{"Trash"},
			Attributes: []AttributeSpec{{Name: "Size", Value: 42}},
		})
		require.NoError(t, err)

		require.NoError(t, env.manager.DeleteProduct(testCtx(), p.ID))

		var catLinks, attrLinks int64
		require.NoError(t, env.db.Model(&domain.ProductCategory{}).Where("product_id = ?", p.ID).Count(&catLinks).Error)
		require.NoError(t, env.db.Model(&domain.ProductAttribute{}).Where("product_id = ?", p.ID).Count(&attrLinks).Error)
		assert.Zero(t, catLinks)
		assert.Zero(t, attrLinks)

		// the vocabulary itself survives product deletion
		_, err = env.manager.Categories().GetByName("Trash")
		assert.NoError(t, err)
	})
}

func TestActivation(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Widget", "1", "EUR")

	t.Run("double activation conflicts", func(t *testing.T) {
		err := env.manager.ActivateProduct(testCtx(), p.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("deactivate then activate", func(t *testing.T) {
		require.NoError(t, env.manager.DeactivateProduct(testCtx(), p.ID))

		got, err := env.manager.GetProduct(p.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)

		err = env.manager.DeactivateProduct(testCtx(), p.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))

		require.NoError(t, env.manager.ActivateProduct(testCtx(), p.ID))
	})

	t.Run("missing product", func(t *testing.T) {
		err := env.manager.ActivateProduct(testCtx(), 999999)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestFormatProductData(t *testing.T) {
	env := newTestEnv(t)
	env.seedRates(t, "USD", map[string]float64{"EUR": 0.9})

	p, err := env.manager.CreateProduct(testCtx(), CreateProductInput{
		Name:       "Widget",
		Price:      "100",
		Currency:   "USD",
		Categories: []string{"Tools"},
		Attributes: []AttributeSpec{{Name: "Color", Value: "Red"}},
	})
	require.NoError(t, err)

	t.Run("no conversion", func(t *testing.T) {
		loaded, err := env.manager.GetProduct(p.ID)
		require.NoError(t, err)
		view, err := env.manager.FormatProductData(loaded, "")
		require.NoError(t, err)
		assert.Equal(t, "100", view.Price)
		assert.Equal(t, "USD", view.PriceCurrency)
		assert.Equal(t, []string{"Tools"}, view.Categories)
		require.Len(t, view.Attributes, 1)
		assert.Equal(t, "Color", view.Attributes[0].Name)
		assert.Equal(t, "Red", view.Attributes[0].Value)
	})

	t.Run("converted to requested currency", func(t *testing.T) {
		loaded, err := env.manager.GetProduct(p.ID)
		require.NoError(t, err)
		view, err := env.manager.FormatProductData(loaded, "EUR")
		require.NoError(t, err)
		assert.Equal(t, "90.00", view.Price)
		assert.Equal(t, "EUR", view.PriceCurrency)

		// the stored entity is never touched by the read-path conversion
		again, err := env.manager.GetProduct(p.ID)
		require.NoError(t, err)
		assert.Equal(t, "100", again.Price)
		assert.Equal(t, "USD", again.PriceCurrency)
	})

	t.Run("missing stored currency", func(t *testing.T) {
		broken := &domain.Product{ID: 1, Name: "corrupt", Price: "5"}
		_, err := env.manager.FormatProductData(broken, "EUR")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestProductsList(t *testing.T) {
	env := newTestEnv(t)

	for i := 1; i <= 5; i++ {
		_, err := env.manager.CreateProduct(testCtx(), CreateProductInput{
			Name:       fmt.Sprintf("Widget %d", i),
			Price:      fmt.Sprintf("%d", i*10),
			Currency:   "EUR",
			Categories: []string{"Tools"},
		})
		require.NoError(t, err)
	}
	_, err := env.manager.CreateProduct(testCtx(), CreateProductInput{
		Name:       "Lone Gadget",
		Price:      "7",
		Currency:   "EUR",
		Attributes: []AttributeSpec{{Name: "Color", Value: "Blue"}},
	})
	require.NoError(t, err)

	t.Run("pagination info", func(t *testing.T) {
		views, info, err := env.manager.ProductsList(ListQuery{Page: 1, PageSize: 4})
		require.NoError(t, err)
		assert.Len(t, views, 4)
		assert.EqualValues(t, 6, info.TotalItems)
		assert.Equal(t, 2, info.TotalPages)
		assert.Equal(t, 2, info.LastPage)
		assert.Equal(t, 1, info.CurrentPage)
		assert.Equal(t, 4, info.ItemsOnPage)
		assert.True(t, info.HasNext)
		assert.False(t, info.HasPrev)

		views, info, err = env.manager.ProductsList(ListQuery{Page: 2, PageSize: 4})
		require.NoError(t, err)
		assert.Len(t, views, 2)
		assert.False(t, info.HasNext)
		assert.True(t, info.HasPrev)
	})

	t.Run("search", func(t *testing.T) {
		views, _, err := env.manager.ProductsList(ListQuery{Search: "gadget"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Lone Gadget", views[0].Name)
	})

	t.Run("category filter", func(t *testing.T) {
		views, info, err := env.manager.ProductsList(ListQuery{Categories: []string{"Tools"}})
		require.NoError(t, err)
		assert.Len(t, views, 5)
		assert.EqualValues(t, 5, info.TotalItems)
	})

	t.Run("attribute filter", func(t *testing.T) {
		views, _, err := env.manager.ProductsList(ListQuery{Attributes: []string{"Color"}})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Lone Gadget", views[0].Name)
	})

	t.Run("sorted by name desc", func(t *testing.T) {
		views, _, err := env.manager.ProductsList(ListQuery{Sort: "name", Order: "DESC", PageSize: 1})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Widget 5", views[0].Name)
	})
}

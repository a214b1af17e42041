package catalog

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/domain"
)

// AttributeView is one attribute entry in a product presentation record.
type AttributeView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// ProductView is the flat presentation record handed to controllers.
type ProductView struct {
	ID            int64           `json:"id,string"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         string          `json:"price"`
	PriceCurrency string          `json:"price_currency"`
	Active        bool            `json:"active"`
	Categories    []string        `json:"categories"`
	Attributes    []AttributeView `json:"attributes"`
	Icon          string          `json:"icon,omitempty"`
	Images        []string        `json:"images"`
}

// FormatProductData flattens a product for presentation. When a requested
// currency differs from the stored one the price is converted on the read
// path only; the stored entity is never mutated.
func (m *Manager) FormatProductData(p *domain.Product, requestedCurrency string) (*ProductView, error) {
	if p.PriceCurrency == "" {
		return nil, errors.Wrapf(domain.ErrValidation, "product %d has no price currency", p.ID)
	}

	view := &ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		PriceCurrency: p.PriceCurrency,
		Active:        p.Active,
		Categories:    []string{},
		Attributes:    []AttributeView{},
		Images:        []string{},
	}

	for _, link := range p.Categories {
		if link.Category != nil {
			view.Categories = append(view.Categories, link.Category.Name)
		}
	}
	for _, link := range p.Attributes {
		av := AttributeView{Value: link.Value, Type: link.ValueType}
		if link.Attribute != nil {
			av.Name = link.Attribute.Name
		}
		view.Attributes = append(view.Attributes, av)
	}
	if p.Icon != nil {
		view.Icon = p.Icon.FileName
	}
	for _, img := range p.Images {
		view.Images = append(view.Images, img.FileName)
	}

	requested := strings.ToUpper(strings.TrimSpace(requestedCurrency))
	if requested != "" && requested != p.PriceCurrency {
		amount, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, errors.Wrapf(domain.ErrValidation, "stored price %q is not a decimal", p.Price)
		}
		converted, err := m.converter.Convert(p.PriceCurrency, amount, requested)
		if err != nil {
			return nil, err
		}
		view.Price = converted.StringFixed(2)
		view.PriceCurrency = requested
	}

	return view, nil
}

// ListQuery selects, sorts and pages the product list.
type ListQuery struct {
	Search     string
	Categories []string
	Attributes []string
	Page       int
	PageSize   int
	Sort       string
	Order      string
	Currency   string
}

// PaginationInfo mirrors the shape controllers serialize alongside the
// product page.
type PaginationInfo struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	ItemsOnPage int   `json:"items_on_page"`
	LastPage    int   `json:"last_page"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// whitelist of sortable columns to avoid SQL injection
var productSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (m *Manager) listQuery(q ListQuery) *gorm.DB {
	db := m.db.Model(&domain.Product{})
	if s := strings.TrimSpace(q.Search); s != "" {
		db = db.Where("LOWER(product.name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if len(q.Categories) > 0 {
		db = db.Joins("JOIN product_category pc ON pc.product_id = product.id").
			Joins("JOIN category c ON c.id = pc.category_id").
			Where("c.name IN ?", q.Categories)
	}
	if len(q.Attributes) > 0 {
		db = db.Joins("JOIN product_attribute pa ON pa.product_id = product.id").
			Joins("JOIN attribute a ON a.id = pa.attribute_id").
			Where("a.name IN ?", q.Attributes)
	}
	return db
}

// ProductsList filters, sorts and paginates products and maps each result
// through FormatProductData.
func (m *Manager) ProductsList(q ListQuery) ([]*ProductView, *PaginationInfo, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var total int64
	if err := m.listQuery(q).Distinct("product.id").Count(&total).Error; err != nil {
		return nil, nil, errors.Wrapf(domain.ErrPersistence, "count products: %v", err)
	}

	sortCol, ok := productSortColumns[q.Sort]
	if !ok {
		sortCol = "id"
	}
	order := strings.ToUpper(q.Order)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	var ids []int64
	err := m.listQuery(q).Group("product.id").
		Order("product." + sortCol + " " + order).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Pluck("product.id", &ids).Error
	if err != nil {
		return nil, nil, errors.Wrapf(domain.ErrPersistence, "list products: %v", err)
	}

	views := make([]*ProductView, 0, len(ids))
	for _, id := range ids {
		p, err := m.GetProduct(id)
		if err != nil {
			return nil, nil, err
		}
		view, err := m.FormatProductData(p, q.Currency)
		if err != nil {
			return nil, nil, err
		}
		views = append(views, view)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	info := &PaginationInfo{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		ItemsOnPage: len(views),
		LastPage:    totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && total > 0,
	}
	return views, info, nil
}

package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/assets"
	"github.com/brightline/catalogd/internal/currency"
	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/internal/oplog"
	"github.com/brightline/catalogd/pkg/common"
)

// Manager owns product entities and orchestrates the registries, the
// currency converter and the asset storage.
type Manager struct {
	db         *gorm.DB
	categories *CategoryService
	attributes *AttributeService
	converter  *currency.Converter
	storage    *assets.Storage
	log        *oplog.Writer
}

func NewManager(
	db *gorm.DB,
	categories *CategoryService,
	attributes *AttributeService,
	converter *currency.Converter,
	storage *assets.Storage,
	log *oplog.Writer,
) *Manager {
	return &Manager{
		db:         db,
		categories: categories,
		attributes: attributes,
		converter:  converter,
		storage:    storage,
		log:        log,
	}
}

func (m *Manager) Categories() *CategoryService  { return m.categories }
func (m *Manager) Attributes() *AttributeService { return m.attributes }

// AttributeSpec names an attribute and its raw value for assignment at
// product creation time.
type AttributeSpec struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type CreateProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       string          `json:"price"`
	Currency    string          `json:"currency"`
	Categories  []string        `json:"categories"`
	Attributes  []AttributeSpec `json:"attributes"`
}

// CreateProduct creates an active product and links the supplied
// category/attribute lists, resolving each entry by name and creating
// vocabulary entries on first use.
func (m *Manager) CreateProduct(rctx oplog.RequestContext, in CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.Wrap(domain.ErrValidation, "product name is required")
	}
	if _, err := decimal.NewFromString(in.Price); err != nil {
		return nil, errors.Wrapf(domain.ErrValidation, "price %q is not a decimal", in.Price)
	}
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if cur == "" {
		cur = "EUR"
	}

	now := time.Now()
	p := domain.Product{
		ID:            common.UUIDint64(),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		PriceCurrency: cur,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := m.db.Create(&p).Error; err != nil {
		return nil, errors.Wrapf(domain.ErrPersistence, "create product %q: %v", p.Name, err)
	}

	for _, name := range in.Categories {
		c, err := m.categories.GetOrCreate(rctx, name)
		if err != nil {
			return nil, err
		}
		if err := m.AssignCategory(rctx, &p, c); err != nil {
			return nil, err
		}
	}
	for _, spec := range in.Attributes {
		a, err := m.attributes.GetOrCreate(rctx, spec.Name)
		if err != nil {
			return nil, err
		}
		if err := m.AssignAttribute(rctx, &p, a, spec.Value); err != nil {
			return nil, err
		}
	}

	m.log.Write(rctx, "create_product", fmt.Sprintf("created product %s", p.Name), oplog.SeverityInfo)
	return &p, nil
}

// EditProductInput carries a partial update; nil fields keep the stored
// value.
type EditProductInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Currency    *string `json:"currency"`
}

func (m *Manager) EditProduct(rctx oplog.RequestContext, id int64, in EditProductInput) error {
	p, err := m.getProduct(id)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		if _, err := decimal.NewFromString(*in.Price); err != nil {
			return errors.Wrapf(domain.ErrValidation, "price %q is not a decimal", *in.Price)
		}
		updates["price"] = *in.Price
	}
	if in.Currency != nil {
		updates["price_currency"] = strings.ToUpper(*in.Currency)
	}

	if err := m.db.Model(&domain.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "edit product %d: %v", id, err)
	}
	m.log.Write(rctx, "edit_product", fmt.Sprintf("edited product %s", p.Name), oplog.SeverityInfo)
	return nil
}

// DeleteProduct removes the product row and its association rows. Asset
// files are deliberately not cascaded here; the caller deletes them
// through the asset operations.
func (m *Manager) DeleteProduct(rctx oplog.RequestContext, id int64) error {
	p, err := m.getProduct(id)
	if err != nil {
		return err
	}

	if err := m.categories.DeleteAllForProduct(id); err != nil {
		return err
	}
	if err := m.attributes.DeleteAllForProduct(id); err != nil {
		return err
	}
	if err := m.db.Where("product_id = ?", id).Delete(&domain.ProductIcon{}).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "delete icon row for product %d: %v", id, err)
	}
	if err := m.db.Where("product_id = ?", id).Delete(&domain.ProductImage{}).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "delete image rows for product %d: %v", id, err)
	}
	if err := m.db.Delete(&domain.Product{}, id).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "delete product %d: %v", id, err)
	}

	m.log.Write(rctx, "delete_product", fmt.Sprintf("deleted product %s", p.Name), oplog.SeverityInfo)
	return nil
}

func (m *Manager) ActivateProduct(rctx oplog.RequestContext, id int64) error {
	return m.setActive(rctx, id, true)
}

func (m *Manager) DeactivateProduct(rctx oplog.RequestContext, id int64) error {
	return m.setActive(rctx, id, false)
}

func (m *Manager) setActive(rctx oplog.RequestContext, id int64, active bool) error {
	p, err := m.getProduct(id)
	if err != nil {
		return err
	}
	if p.Active == active {
		return errors.Wrapf(domain.ErrConflict, "product %d is already %s", id, stateName(active))
	}
	err = m.db.Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"active": active, "updated_at": time.Now()}).Error
	if err != nil {
		return errors.Wrapf(domain.ErrPersistence, "update product %d: %v", id, err)
	}
	m.log.Write(rctx, "set_product_state",
		fmt.Sprintf("product %s is now %s", p.Name, stateName(active)), oplog.SeverityInfo)
	return nil
}

func stateName(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// GetProduct loads a product with all of its associations.
func (m *Manager) GetProduct(id int64) (*domain.Product, error) {
	var p domain.Product
	err := m.db.
		Preload("Icon").
		Preload("Images").
		Preload("Categories.Category").
		Preload("Attributes.Attribute").
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(domain.ErrNotFound, "product %d", id)
		}
		return nil, errors.Wrapf(domain.ErrPersistence, "query product %d: %v", id, err)
	}
	return &p, nil
}

func (m *Manager) getProduct(id int64) (*domain.Product, error) {
	var p domain.Product
	if err := m.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(domain.ErrNotFound, "product %d", id)
		}
		return nil, errors.Wrapf(domain.ErrPersistence, "query product %d: %v", id, err)
	}
	return &p, nil
}

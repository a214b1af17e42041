package catalog

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/internal/oplog"
	"github.com/brightline/catalogd/pkg/common"
)

// AssignCategory links a category to a product. Assigning a category the
// product already references is rejected; this is deliberately asymmetric
// with attribute assignment, which overwrites.
func (m *Manager) AssignCategory(rctx oplog.RequestContext, p *domain.Product, c *domain.Category) error {
	var count int64
	err := m.db.Model(&domain.ProductCategory{}).
		Where("product_id = ? AND category_id = ?", p.ID, c.ID).
		Count(&count).Error
	if err != nil {
		return errors.Wrapf(domain.ErrPersistence, "query category link: %v", err)
	}
	if count > 0 {
		return errors.Wrapf(domain.ErrValidation,
			"product %s already has category %s", p.Name, c.Name)
	}

	link := domain.ProductCategory{
		ID:         common.UUIDint64(),
		ProductID:  p.ID,
		CategoryID: c.ID,
	}
	if err := m.db.Create(&link).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "link category %s to product %s: %v", c.Name, p.Name, err)
	}
	m.log.Write(rctx, "assign_category",
		fmt.Sprintf("assigned category %s to product %s", c.Name, p.Name), oplog.SeverityInfo)
	return nil
}

// RemoveCategory deletes the product/category link.
func (m *Manager) RemoveCategory(rctx oplog.RequestContext, p *domain.Product, c *domain.Category) error {
	var link domain.ProductCategory
	err := m.db.Where("product_id = ? AND category_id = ?", p.ID, c.ID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(domain.ErrNotFound,
				"product %s has no category %s", p.Name, c.Name)
		}
		return errors.Wrapf(domain.ErrPersistence, "query category link: %v", err)
	}
	if err := m.db.Delete(&domain.ProductCategory{}, link.ID).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "unlink category %s from product %s: %v", c.Name, p.Name, err)
	}
	m.log.Write(rctx, "remove_category",
		fmt.Sprintf("removed category %s from product %s", c.Name, p.Name), oplog.SeverityInfo)
	return nil
}

// AssignAttribute attaches an attribute value to a product. When the
// product already carries the attribute the call delegates to the update
// path, so assignment is idempotent-by-replacement.
func (m *Manager) AssignAttribute(rctx oplog.RequestContext, p *domain.Product, a *domain.Attribute, value interface{}) error {
	var count int64
	err := m.db.Model(&domain.ProductAttribute{}).
		Where("product_id = ? AND attribute_id = ?", p.ID, a.ID).
		Count(&count).Error
	if err != nil {
		return errors.Wrapf(domain.ErrPersistence, "query attribute link: %v", err)
	}
	if count > 0 {
		return m.UpdateAttributeValue(rctx, p, a, value)
	}

	tv := DetectValue(value)
	link := domain.ProductAttribute{
		ID:          common.UUIDint64(),
		ProductID:   p.ID,
		AttributeID: a.ID,
		Value:       tv.Value,
		ValueType:   tv.Type,
	}
	if err := m.db.Create(&link).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "link attribute %s to product %s: %v", a.Name, p.Name, err)
	}
	m.log.Write(rctx, "assign_attribute",
		fmt.Sprintf("assigned attribute %s=%s to product %s", a.Name, tv.Value, p.Name), oplog.SeverityInfo)
	return nil
}

// UpdateAttributeValue overwrites the stored value for an existing
// product/attribute link. The type tag is recomputed from the new value.
func (m *Manager) UpdateAttributeValue(rctx oplog.RequestContext, p *domain.Product, a *domain.Attribute, value interface{}) error {
	var link domain.ProductAttribute
	err := m.db.Where("product_id = ? AND attribute_id = ?", p.ID, a.ID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(domain.ErrNotFound,
				"product %s has no attribute %s", p.Name, a.Name)
		}
		return errors.Wrapf(domain.ErrPersistence, "query attribute link: %v", err)
	}

	tv := DetectValue(value)
	err = m.db.Model(&domain.ProductAttribute{}).Where("id = ?", link.ID).
		Updates(map[string]interface{}{"value": tv.Value, "value_type": tv.Type}).Error
	if err != nil {
		return errors.Wrapf(domain.ErrPersistence, "update attribute %s on product %s: %v", a.Name, p.Name, err)
	}
	m.log.Write(rctx, "update_attribute",
		fmt.Sprintf("updated attribute %s=%s on product %s", a.Name, tv.Value, p.Name), oplog.SeverityInfo)
	return nil
}

// RemoveAttribute deletes the product/attribute link.
func (m *Manager) RemoveAttribute(rctx oplog.RequestContext, p *domain.Product, a *domain.Attribute) error {
	var link domain.ProductAttribute
	err := m.db.Where("product_id = ? AND attribute_id = ?", p.ID, a.ID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(domain.ErrNotFound,
				"product %s has no attribute %s", p.Name, a.Name)
		}
		return errors.Wrapf(domain.ErrPersistence, "query attribute link: %v", err)
	}
	if err := m.db.Delete(&domain.ProductAttribute{}, link.ID).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "unlink attribute %s from product %s: %v", a.Name, p.Name, err)
	}
	m.log.Write(rctx, "remove_attribute",
		fmt.Sprintf("removed attribute %s from product %s", a.Name, p.Name), oplog.SeverityInfo)
	return nil
}

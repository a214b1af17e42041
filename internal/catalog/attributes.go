package catalog

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/internal/oplog"
	"github.com/brightline/catalogd/pkg/common"
)

// AttributeService manages the attribute vocabulary, symmetric with
// CategoryService.
type AttributeService struct {
	db  *gorm.DB
	log *oplog.Writer
}

func NewAttributeService(db *gorm.DB, log *oplog.Writer) *AttributeService {
	return &AttributeService{db: db, log: log}
}

func (s *AttributeService) NameExists(name string) (bool, error) {
	var count int64
	err := s.db.Model(&domain.Attribute{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(domain.ErrPersistence, "count attributes: %v", err)
	}
	return count > 0, nil
}

func (s *AttributeService) GetByID(id int64) (*domain.Attribute, error) {
	var a domain.Attribute
	if err := s.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(domain.ErrNotFound, "attribute %d", id)
		}
		return nil, errors.Wrapf(domain.ErrPersistence, "query attribute %d: %v", id, err)
	}
	return &a, nil
}

func (s *AttributeService) GetByName(name string) (*domain.Attribute, error) {
	var a domain.Attribute
	if err := s.db.Where("name = ?", name).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(domain.ErrNotFound, "attribute %q", name)
		}
		return nil, errors.Wrapf(domain.ErrPersistence, "query attribute %q: %v", name, err)
	}
	return &a, nil
}

func (s *AttributeService) Create(rctx oplog.RequestContext, name string) (*domain.Attribute, error) {
	exists, err := s.NameExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrapf(domain.ErrConflict, "attribute %q already exists", name)
	}

	a := domain.Attribute{ID: common.UUIDint64(), Name: name}
	if err := s.db.Create(&a).Error; err != nil {
		return nil, errors.Wrapf(domain.ErrPersistence, "create attribute %q: %v", name, err)
	}
	s.log.Write(rctx, "create_attribute", fmt.Sprintf("created attribute %s", name), oplog.SeverityInfo)
	return &a, nil
}

// GetOrCreate resolves an attribute by name, creating it on first use.
func (s *AttributeService) GetOrCreate(rctx oplog.RequestContext, name string) (*domain.Attribute, error) {
	a, err := s.GetByName(name)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.Create(rctx, name)
}

func (s *AttributeService) Rename(rctx oplog.RequestContext, id int64, newName string) error {
	a, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var other domain.Attribute
	err = s.db.Where("name = ? AND id <> ?", newName, id).First(&other).Error
	if err == nil {
		return errors.Wrapf(domain.ErrConflict, "attribute %q already exists", newName)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(domain.ErrPersistence, "query attribute %q: %v", newName, err)
	}

	oldName := a.Name
	if err := s.db.Model(&domain.Attribute{}).Where("id = ?", id).
		Update("name", newName).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "rename attribute %d: %v", id, err)
	}
	s.log.Write(rctx, "rename_attribute",
		fmt.Sprintf("renamed attribute %s to %s", oldName, newName), oplog.SeverityInfo)
	return nil
}

func (s *AttributeService) Delete(rctx oplog.RequestContext, id int64) error {
	a, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&domain.Attribute{}, id).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "delete attribute %d: %v", id, err)
	}
	s.log.Write(rctx, "delete_attribute", fmt.Sprintf("deleted attribute %s", a.Name), oplog.SeverityInfo)
	return nil
}

// DeleteAllForProduct bulk-removes a product's attribute links without
// loading them, used on product deletion.
func (s *AttributeService) DeleteAllForProduct(productID int64) error {
	err := s.db.Where("product_id = ?", productID).Delete(&domain.ProductAttribute{}).Error
	if err != nil {
		return errors.Wrapf(domain.ErrPersistence, "delete attribute links for product %d: %v", productID, err)
	}
	return nil
}

// List returns attributes ordered by name with the total count.
func (s *AttributeService) List(page, pageSize int) ([]domain.Attribute, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	var total int64
	if err := s.db.Model(&domain.Attribute{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(domain.ErrPersistence, "count attributes: %v", err)
	}
	var rows []domain.Attribute
	err := s.db.Order("name ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrapf(domain.ErrPersistence, "list attributes: %v", err)
	}
	return rows, total, nil
}

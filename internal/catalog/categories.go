package catalog

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/internal/oplog"
	"github.com/brightline/catalogd/pkg/common"
)

// CategoryService manages the category vocabulary. Name uniqueness is
// pre-checked for an early error; the unique index on category.name is the
// authoritative guard under contention.
type CategoryService struct {
	db  *gorm.DB
	log *oplog.Writer
}

func NewCategoryService(db *gorm.DB, log *oplog.Writer) *CategoryService {
	return &CategoryService{db: db, log: log}
}

func (s *CategoryService) NameExists(name string) (bool, error) {
	var count int64
	err := s.db.Model(&domain.Category{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(domain.ErrPersistence, "count categories: %v", err)
	}
	return count > 0, nil
}

func (s *CategoryService) GetByID(id int64) (*domain.Category, error) {
	var c domain.Category
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(domain.ErrNotFound, "category %d", id)
		}
		return nil, errors.Wrapf(domain.ErrPersistence, "query category %d: %v", id, err)
	}
	return &c, nil
}

func (s *CategoryService) GetByName(name string) (*domain.Category, error) {
	var c domain.Category
	if err := s.db.Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(domain.ErrNotFound, "category %q", name)
		}
		return nil, errors.Wrapf(domain.ErrPersistence, "query category %q: %v", name, err)
	}
	return &c, nil
}

func (s *CategoryService) Create(rctx oplog.RequestContext, name string) (*domain.Category, error) {
	exists, err := s.NameExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrapf(domain.ErrConflict, "category %q already exists", name)
	}

	c := domain.Category{ID: common.UUIDint64(), Name: name}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, errors.Wrapf(domain.ErrPersistence, "create category %q: %v", name, err)
	}
	s.log.Write(rctx, "create_category", fmt.Sprintf("created category %s", name), oplog.SeverityInfo)
	return &c, nil
}

// GetOrCreate resolves a category by name, creating it on first use.
func (s *CategoryService) GetOrCreate(rctx oplog.RequestContext, name string) (*domain.Category, error) {
	c, err := s.GetByName(name)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.Create(rctx, name)
}

func (s *CategoryService) Rename(rctx oplog.RequestContext, id int64, newName string) error {
	c, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var other domain.Category
	err = s.db.Where("name = ? AND id <> ?", newName, id).First(&other).Error
	if err == nil {
		return errors.Wrapf(domain.ErrConflict, "category %q already exists", newName)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(domain.ErrPersistence, "query category %q: %v", newName, err)
	}

	oldName := c.Name
	if err := s.db.Model(&domain.Category{}).Where("id = ?", id).
		Update("name", newName).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "rename category %d: %v", id, err)
	}
	s.log.Write(rctx, "rename_category",
		fmt.Sprintf("renamed category %s to %s", oldName, newName), oplog.SeverityInfo)
	return nil
}

func (s *CategoryService) Delete(rctx oplog.RequestContext, id int64) error {
	c, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&domain.Category{}, id).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "delete category %d: %v", id, err)
	}
	s.log.Write(rctx, "delete_category", fmt.Sprintf("deleted category %s", c.Name), oplog.SeverityInfo)
	return nil
}

// DeleteAllForProduct bulk-removes a product's category links without
// loading them, used on product deletion.
func (s *CategoryService) DeleteAllForProduct(productID int64) error {
	err := s.db.Where("product_id = ?", productID).Delete(&domain.ProductCategory{}).Error
	if err != nil {
		return errors.Wrapf(domain.ErrPersistence, "delete category links for product %d: %v", productID, err)
	}
	return nil
}

// List returns categories ordered by name with the total count.
func (s *CategoryService) List(page, pageSize int) ([]domain.Category, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	var total int64
	if err := s.db.Model(&domain.Category{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(domain.ErrPersistence, "count categories: %v", err)
	}
	var rows []domain.Category
	err := s.db.Order("name ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrapf(domain.ErrPersistence, "list categories: %v", err)
	}
	return rows, total, nil
}

package catalog

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/assets"
	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/internal/oplog"
	"github.com/brightline/catalogd/pkg/common"
)

// Asset operations pair a database row with a file on disk. The row is
// written before the bytes and removed before the bytes; the two steps are
// not transactional, so a failure between them leaves either a dangling
// row or an orphaned file. The reconciliation sweep cleans up orphans.

// CreateProductIcon stores the icon bytes under a generated name and
// records the one-to-one icon row. A product with an existing icon is a
// conflict.
func (m *Manager) CreateProductIcon(rctx oplog.RequestContext, p *domain.Product, originalName string, content []byte) (*domain.ProductIcon, error) {
	var count int64
	err := m.db.Model(&domain.ProductIcon{}).Where("product_id = ?", p.ID).Count(&count).Error
	if err != nil {
		return nil, errors.Wrapf(domain.ErrPersistence, "query icon row: %v", err)
	}
	if count > 0 {
		return nil, errors.Wrapf(domain.ErrConflict, "product %s already has an icon", p.Name)
	}

	name, err := m.storage.GenerateName(assets.KindIcons, originalName)
	if err != nil {
		return nil, err
	}
	icon := domain.ProductIcon{
		ID:        common.UUIDint64(),
		ProductID: p.ID,
		FileName:  name,
	}
	if err := m.db.Create(&icon).Error; err != nil {
		return nil, errors.Wrapf(domain.ErrPersistence, "create icon row for product %s: %v", p.Name, err)
	}
	if err := m.storage.CreateResource(assets.KindIcons, name, content); err != nil {
		return nil, err
	}

	m.log.Write(rctx, "create_product_icon",
		fmt.Sprintf("stored icon %s for product %s", name, p.Name), oplog.SeverityInfo)
	return &icon, nil
}

// CreateProductImage stores one image for the product; products hold any
// number of images.
func (m *Manager) CreateProductImage(rctx oplog.RequestContext, p *domain.Product, originalName string, content []byte) (*domain.ProductImage, error) {
	name, err := m.storage.GenerateName(assets.KindImages, originalName)
	if err != nil {
		return nil, err
	}
	img := domain.ProductImage{
		ID:        common.UUIDint64(),
		ProductID: p.ID,
		FileName:  name,
	}
	if err := m.db.Create(&img).Error; err != nil {
		return nil, errors.Wrapf(domain.ErrPersistence, "create image row for product %s: %v", p.Name, err)
	}
	if err := m.storage.CreateResource(assets.KindImages, name, content); err != nil {
		return nil, err
	}

	m.log.Write(rctx, "create_product_image",
		fmt.Sprintf("stored image %s for product %s", name, p.Name), oplog.SeverityInfo)
	return &img, nil
}

// DeleteProductIcon removes the icon row, then the file. File deletion is
// idempotent so a previously orphaned row still clears.
func (m *Manager) DeleteProductIcon(rctx oplog.RequestContext, p *domain.Product) error {
	var icon domain.ProductIcon
	err := m.db.Where("product_id = ?", p.ID).First(&icon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(domain.ErrNotFound, "product %s has no icon", p.Name)
		}
		return errors.Wrapf(domain.ErrPersistence, "query icon row: %v", err)
	}

	if err := m.db.Delete(&domain.ProductIcon{}, icon.ID).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "delete icon row %d: %v", icon.ID, err)
	}
	if err := m.storage.DeleteResource(assets.KindIcons, icon.FileName); err != nil {
		return err
	}

	m.log.Write(rctx, "delete_product_icon",
		fmt.Sprintf("deleted icon %s of product %s", icon.FileName, p.Name), oplog.SeverityInfo)
	return nil
}

// DeleteProductImage removes one image row by id, then its file.
func (m *Manager) DeleteProductImage(rctx oplog.RequestContext, p *domain.Product, imageID int64) error {
	var img domain.ProductImage
	err := m.db.Where("id = ? AND product_id = ?", imageID, p.ID).First(&img).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(domain.ErrNotFound, "product %s has no image %d", p.Name, imageID)
		}
		return errors.Wrapf(domain.ErrPersistence, "query image row: %v", err)
	}

	if err := m.db.Delete(&domain.ProductImage{}, img.ID).Error; err != nil {
		return errors.Wrapf(domain.ErrPersistence, "delete image row %d: %v", img.ID, err)
	}
	if err := m.storage.DeleteResource(assets.KindImages, img.FileName); err != nil {
		return err
	}

	m.log.Write(rctx, "delete_product_image",
		fmt.Sprintf("deleted image %s of product %s", img.FileName, p.Name), oplog.SeverityInfo)
	return nil
}

// ReconcileOrphanedAssets deletes stored files that no icon or image row
// references. Returns the number of files removed.
func (m *Manager) ReconcileOrphanedAssets() (int, error) {
	removed := 0

	iconFiles, err := m.storage.ListResources(assets.KindIcons)
	if err != nil {
		return removed, err
	}
	for _, name := range iconFiles {
		var count int64
		if err := m.db.Model(&domain.ProductIcon{}).Where("file_name = ?", name).Count(&count).Error; err != nil {
			return removed, errors.Wrapf(domain.ErrPersistence, "query icon rows: %v", err)
		}
		if count == 0 {
			if err := m.storage.DeleteResource(assets.KindIcons, name); err != nil {
				return removed, err
			}
			removed++
		}
	}

	imageFiles, err := m.storage.ListResources(assets.KindImages)
	if err != nil {
		return removed, err
	}
	for _, name := range imageFiles {
		var count int64
		if err := m.db.Model(&domain.ProductImage{}).Where("file_name = ?", name).Count(&count).Error; err != nil {
			return removed, errors.Wrapf(domain.ErrPersistence, "query image rows: %v", err)
		}
		if count == 0 {
			if err := m.storage.DeleteResource(assets.KindImages, name); err != nil {
				return removed, err
			}
			removed++
		}
	}

	return removed, nil
}

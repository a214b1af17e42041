package domain

import "time"

// Product is the catalog's central entity. Price is kept as a decimal
// string to avoid float rounding; PriceCurrency is always stored
// upper-case and never empty for a persisted product.
type Product struct {
	ID            int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name          string    `gorm:"index" json:"name" form:"name"`
	Description   string    `json:"description" form:"description"`
	Price         string    `gorm:"size:64" json:"price" form:"price"`
	PriceCurrency string    `gorm:"size:3" json:"price_currency" form:"price_currency"`
	Active        bool      `json:"active" form:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Icon       *ProductIcon       `gorm:"constraint:OnDelete:CASCADE" json:"icon,omitempty"`
	Images     []ProductImage     `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Categories []ProductCategory  `gorm:"constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Attributes []ProductAttribute `gorm:"constraint:OnDelete:CASCADE" json:"attributes,omitempty"`
}

func (Product) TableName() string {
	return "product"
}

// ProductIcon is the one-to-one icon asset row. FileName is the opaque
// generated token plus the original extension; the bytes live on disk
// under the icons sub-path.
type ProductIcon struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	ProductID int64     `gorm:"uniqueIndex" json:"product_id,string"`
	FileName  string    `gorm:"size:255;index" json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProductIcon) TableName() string {
	return "product_icon"
}

// ProductImage is the one-to-many image asset row.
type ProductImage struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	ProductID int64     `gorm:"index" json:"product_id,string"`
	FileName  string    `gorm:"size:255;index" json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProductImage) TableName() string {
	return "product_image"
}

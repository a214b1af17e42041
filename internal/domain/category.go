package domain

import "time"

// Category is a controlled vocabulary entry. Names are globally unique,
// case-sensitive as stored.
type Category struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name      string    `gorm:"uniqueIndex;size:255" json:"name" form:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "category"
}

// ProductCategory links a product to a category. The composite unique
// index is the authoritative guard against duplicate links; service-level
// pre-checks are only a fast path.
type ProductCategory struct {
	ID         int64     `gorm:"primaryKey" json:"id,string"`
	ProductID  int64     `gorm:"uniqueIndex:idx_product_category;index" json:"product_id,string"`
	CategoryID int64     `gorm:"uniqueIndex:idx_product_category" json:"category_id,string"`
	CreatedAt  time.Time `json:"created_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (ProductCategory) TableName() string {
	return "product_category"
}

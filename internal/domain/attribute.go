package domain

import "time"

// Attribute value type tags captured at assignment time.
const (
	AttrTypeString  = "string"
	AttrTypeInteger = "integer"
	AttrTypeDouble  = "double"
	AttrTypeBoolean = "boolean"
)

// Attribute is a free-form typed attribute definition. Names are globally
// unique, case-sensitive as stored.
type Attribute struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name      string    `gorm:"uniqueIndex;size:255" json:"name" form:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Attribute) TableName() string {
	return "attribute"
}

// ProductAttribute links a product to an attribute and carries the typed
// value. One attribute attaches to a product at most once; re-assignment
// overwrites Value and ValueType instead of inserting a second row.
type ProductAttribute struct {
	ID          int64     `gorm:"primaryKey" json:"id,string"`
	ProductID   int64     `gorm:"uniqueIndex:idx_product_attribute;index" json:"product_id,string"`
	AttributeID int64     `gorm:"uniqueIndex:idx_product_attribute" json:"attribute_id,string"`
	Value       string    `json:"value"`
	ValueType   string    `gorm:"size:16" json:"value_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Attribute *Attribute `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"`
}

func (ProductAttribute) TableName() string {
	return "product_attribute"
}

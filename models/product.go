package models

import (
	"time"
)

// Product represents a sellable PC in the catalog. Catalog products are
// created by admins; user-composed products (MadeByUser) are synthesized from
// selected parts and live only until their enclosing order is resolved.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Price       float64        `gorm:"not null" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	MadeByUser  bool           `gorm:"not null;default:false" json:"made_by_user"`
	Parts       []Part         `gorm:"many2many:product_parts" json:"parts"` // bill of materials
	Images      []ProductImage `gorm:"foreignKey:ProductID" json:"images"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductImage is a stored image filename owned by exactly one Product
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"` // filename under the product-images directory
	ProductID uint   `gorm:"not null;index" json:"product_id"`
}

// TableName specifies the table name for the ProductImage model
func (ProductImage) TableName() string {
	return "product_images"
}

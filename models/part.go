package models

import (
	"time"
)

// Part represents a component that can be combined with others into a
// user-composed PC. Every part belongs to exactly one category.
type Part struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Name            string           `gorm:"not null" json:"name"`
	Price           float64          `gorm:"not null" json:"price"`
	CategoryID      uint             `gorm:"not null;index" json:"category_id"`
	Category        Category         `gorm:"foreignKey:CategoryID" json:"category"`
	Characteristics []Characteristic `gorm:"many2many:characteristic_parts" json:"characteristics"`
	Images          []PartImage      `gorm:"foreignKey:PartID" json:"images"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName specifies the table name for the Part model
func (Part) TableName() string {
	return "parts"
}

// Category groups parts (CPU, RAM, ...) for the PC-builder selector
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// PartImage is a stored image filename owned by exactly one Part
type PartImage struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"` // filename under the part-images directory
	PartID uint   `gorm:"not null;index" json:"part_id"`
}

// TableName specifies the table name for the PartImage model
func (PartImage) TableName() string {
	return "part_images"
}

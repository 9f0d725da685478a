package models

import (
	"time"
)

// Order represents a placed order awaiting fulfillment. Orders have no
// persisted terminal state: sending or rejecting deletes the record after the
// notification is dispatched.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	User          User        `gorm:"foreignKey:UserID" json:"user"`
	TotalPrice    float64     `gorm:"not null;default:0" json:"total_price"`
	ShippingPrice float64     `gorm:"not null" json:"shipping_price"`
	PhoneNumber   string      `gorm:"not null" json:"phone_number"`
	Address       string      `gorm:"not null" json:"address"` // "<country>, <street address>"
	Date          time.Time   `gorm:"not null;index" json:"date"`
	Lines         []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is a confirmed purchase record linking a placed order to a
// product and quantity. Unit price is read live from the product, not frozen
// here; the order's TotalPrice is the snapshot taken at checkout.
type OrderLine struct {
	OrderID   uint    `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
}

// TableName specifies the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

package models

// CartLine is a pending, unconfirmed purchase intent linking a user to a
// product and quantity. One line per (user, product) pair.
type CartLine struct {
	UserID    uint    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ProductID uint    `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity  int     `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	User      User    `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for the CartLine model
func (CartLine) TableName() string {
	return "cart_lines"
}

// Subtotal returns the line cost at the product's live price
func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

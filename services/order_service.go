package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shoppy-store/shoppy-api/models"
)

const (
	// Shipping is free inside the United States, a flat fee everywhere else
	domesticCountry       = "United States"
	internationalShipping = 50.0
)

// OrderService manages checkout and order fulfillment. Fulfillment outcomes
// (sent, rejected) are terminal: the order record is deleted and the customer
// is notified asynchronously.
type OrderService struct {
	db     *gorm.DB
	mailer Mailer
}

// NewOrderService creates an order service over the given database and mailer
func NewOrderService(db *gorm.DB, mailer Mailer) *OrderService {
	return &OrderService{db: db, mailer: mailer}
}

// CheckoutInput carries the validated shipping form
type CheckoutInput struct {
	PhoneNumber string
	Address     string
	Country     string
}

// Checkout converts the user's cart into a placed order. The total is the sum
// of live product prices times quantities plus the shipping surcharge. Cart
// lines become order lines and the cart is cleared, all in one transaction.
func (s *OrderService) Checkout(userID uint, input CheckoutInput) (*models.Order, error) {
	var lines []models.CartLine
	err := s.db.Preload("Product").Where("user_id = ?", userID).Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, &ValidationError{
			Code:    "EMPTY_CART",
			Message: "You don't have any products in your cart!",
		}
	}

	shipping := internationalShipping
	if input.Country == domesticCountry {
		shipping = 0
	}

	var total float64
	orderLines := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		total += line.Subtotal()
		orderLines = append(orderLines, models.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order := models.Order{
		UserID:        userID,
		TotalPrice:    total,
		ShippingPrice: shipping,
		PhoneNumber:   input.PhoneNumber,
		Address:       fmt.Sprintf("%s, %s", input.Country, input.Address),
		Date:          time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range orderLines {
			orderLines[i].OrderID = order.ID
		}
		if err := tx.Create(&orderLines).Error; err != nil {
			return fmt.Errorf("failed to create order lines: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(order.ID)
}

// GetOrder returns one order with user, lines, products and their parts
// materialized
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("User").
		Preload("Lines.Product.Parts").
		Preload("Lines.Product.Images").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Code: "ORDER_NOT_FOUND", Message: "Order not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// List returns orders sorted by date, optionally restricted to
// [start, end). Both bounds must be given to filter; otherwise all orders are
// returned.
func (s *OrderService) List(start, end *time.Time) ([]models.Order, error) {
	query := s.db.Preload("User").
		Preload("Lines.Product.Parts").
		Order("date")
	if start != nil && end != nil {
		query = query.Where("date >= ? AND date < ?", *start, *end)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ParseDateRange parses optional YYYY-MM-DD bounds into an inclusive start
// and exclusive end-plus-one-day range. Empty strings mean no filtering.
func ParseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	if startDate == "" || endDate == "" {
		return nil, nil, nil
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, nil, &ValidationError{Code: "INVALID_DATE_FORMAT", Message: "Invalid date format"}
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, nil, &ValidationError{Code: "INVALID_DATE_FORMAT", Message: "Invalid date format"}
	}

	// end date is inclusive for callers, so the upper bound is the next day
	upper := end.AddDate(0, 0, 1)
	return &start, &upper, nil
}

// Send marks an order as shipped: the cascade delete runs, then the customer
// is notified
func (s *OrderService) Send(orderID uint) error {
	return s.fulfill(orderID,
		"Order sent",
		"Greetings!\nYour order has just been sent!\nBest regards, Shoppy")
}

// Reject cancels an order: the cascade delete runs, then the customer is
// notified
func (s *OrderService) Reject(orderID uint) error {
	return s.fulfill(orderID,
		"Order rejected",
		"Greetings!\nUnfortunately your order has been flagged as inappropriate and has been cancelled. If you think there was an error, please let us know.\nBest regards, Shoppy")
}

// fulfill resolves an order terminally. The notification text is rendered
// before any deletion since it needs the live aggregate; the cascade runs in
// one transaction and the notification is enqueued only after commit.
func (s *OrderService) fulfill(orderID uint, subject, greeting string) error {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return err
	}

	details := renderOrderDetails(order)
	recipient := order.User.Email

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Child rows go first so the foreign keys on order_lines hold at
		// every step. The line delete doubles as the race check: when two
		// admins resolve the same order, the loser affects zero rows and
		// aborts (every order carries at least one line).
		res := tx.Where("order_id = ?", orderID).Delete(&models.OrderLine{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete order lines: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Code: "ORDER_NOT_FOUND", Message: "Order not found"}
		}

		for _, line := range order.Lines {
			if line.Product.MadeByUser {
				if err := tx.Where("product_id = ?", line.ProductID).Delete(&models.ProductImage{}).Error; err != nil {
					return fmt.Errorf("failed to delete product images: %w", err)
				}
				if err := tx.Model(&models.Product{ID: line.ProductID}).Association("Parts").Clear(); err != nil {
					return fmt.Errorf("failed to clear product parts: %w", err)
				}
				if err := tx.Delete(&models.Product{}, line.ProductID).Error; err != nil {
					return fmt.Errorf("failed to delete product: %w", err)
				}
			}
		}

		if err := tx.Delete(&models.Order{}, orderID).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mailer.Enqueue(subject, greeting+"\n\nORDER DETAILS:\n"+details, recipient)
	return nil
}

// renderOrderDetails formats the full order as the plain-text block used in
// fulfillment notifications. Line prices are read live from the products.
func renderOrderDetails(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stated phone number: %s\n", order.PhoneNumber)
	fmt.Fprintf(&b, "Stated address: %s\n", order.Address)
	fmt.Fprintf(&b, "Date of order: %s\n", order.Date.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Shipping price: %g$\n", order.ShippingPrice)
	fmt.Fprintf(&b, "Total price: %g$\n", order.TotalPrice)
	b.WriteString("Ordered products:\n")

	productLines := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		partNames := make([]string, 0, len(line.Product.Parts))
		for _, part := range line.Product.Parts {
			partNames = append(partNames, part.Name)
		}
		productLines = append(productLines, fmt.Sprintf("%s(%s), Quantity: %d, price: %g$;",
			line.Product.Name,
			strings.Join(partNames, "; "),
			line.Quantity,
			float64(line.Quantity)*line.Product.Price))
	}
	b.WriteString(strings.Join(productLines, "\n"))

	return b.String()
}

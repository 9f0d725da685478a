package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shoppy-store/shoppy-api/models"
)

// CartService manages per-user cart lines
type CartService struct {
	db *gorm.DB
}

// NewCartService creates a cart service over the given database
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// Add upserts a cart line for (user, product). Repeated adds of the same
// product are additive: the quantities accumulate on the existing line.
func (s *CartService) Add(userID, productID uint, quantity int) error {
	if quantity < 1 {
		return &ValidationError{Code: "INVALID_QUANTITY", Message: "Quantity must be at least 1"}
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found"}
		}
		return fmt.Errorf("failed to load product: %w", err)
	}

	var line models.CartLine
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		line = models.CartLine{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := s.db.Create(&line).Error; err != nil {
			return fmt.Errorf("failed to create cart line: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load cart line: %w", err)
	}

	line.Quantity += quantity
	if err := s.db.Save(&line).Error; err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}
	return nil
}

// Get returns the user's cart lines with products materialized
func (s *CartService) Get(userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("product_id asc").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return lines, nil
}

// Total sums the cart at live product prices
func (s *CartService) Total(userID uint) (float64, error) {
	lines, err := s.Get(userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total, nil
}

// Remove deletes the user's cart line for a product and returns the
// recomputed cart total
func (s *CartService) Remove(userID, productID uint) (float64, error) {
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartLine{}).Error
	if err != nil {
		return 0, fmt.Errorf("failed to remove cart line: %w", err)
	}
	return s.Total(userID)
}

// Clear removes every cart line of the user
func (s *CartService) Clear(userID uint) error {
	err := s.db.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

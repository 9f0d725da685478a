package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoppy-store/shoppy-api/config"
	"github.com/shoppy-store/shoppy-api/middleware"
	"github.com/shoppy-store/shoppy-api/services"
)

// AddToCartRequest represents the request body for adding a product
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// AddToCart handles POST /api/v1/cart - upserts a cart line; repeated adds of
// the same product accumulate quantity
func AddToCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := cartService().Add(userID, req.ProductID, req.Quantity); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// GetCart handles GET /api/v1/cart - the user's lines plus running total
func GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	lines, err := cartService().Get(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var total float64
	for _, line := range lines {
		total += line.Subtotal()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"lines": lines,
			"total": total,
		},
	})
}

// RemoveFromCart handles DELETE /api/v1/cart/:productId - drops one line and
// returns the recomputed total
func RemoveFromCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	productID, err := parseID(c, "productId")
	if err != nil {
		return
	}

	total, err := cartService().Remove(userID, productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"total": total},
	})
}

// ListCountries handles GET /api/v1/checkout/countries - the (name, code)
// pairs for the checkout country selector
func ListCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    config.GetCountries(),
	})
}

// CheckoutRequest represents the shipping form submitted at checkout
type CheckoutRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Country     string `json:"country" binding:"required"`
}

// Checkout handles POST /api/v1/checkout - places an order from the user's
// cart and clears the cart
func Checkout(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	order, err := orderService().Checkout(userID, services.CheckoutInput{
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Country:     req.Country,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoppy-store/shoppy-api/middleware"
	"github.com/shoppy-store/shoppy-api/services"
)

// ListProducts handles GET /api/v1/products - catalog products for the
// storefront (user-composed products are never listed)
func ListProducts(c *gin.Context) {
	products, err := catalogService().ListCatalogProducts()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetProduct handles GET /api/v1/products/:id - one product with its full
// aggregate
func GetProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}

	product, err := catalogService().GetProduct(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// CreateProduct handles POST /api/v1/products - creates a catalog product
// from a multipart form (admins only)
func CreateProduct(c *gin.Context) {
	input, ok := bindProductForm(c)
	if !ok {
		return
	}

	product, err := catalogService().CreateProduct(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/products/:id - updates a product; the
// parts list is fully replaced and new images displace the old ones
func UpdateProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}

	input, ok := bindProductForm(c)
	if !ok {
		return
	}

	product, svcErr := catalogService().UpdateProduct(id, input)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/products/:id - removes a product
// unless order lines still reference it
func DeleteProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := catalogService().DeleteProduct(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": id},
	})
}

// CreateCustomProductRequest represents the PC-builder submission
type CreateCustomProductRequest struct {
	Price         float64 `json:"price" binding:"required,gt=0"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	SelectedParts string  `json:"selected_parts" binding:"required"`
}

// CreateCustomProduct handles POST /api/v1/products/custom - synthesizes a
// user-composed PC from selected parts and adds it to the caller's cart
func CreateCustomProduct(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req CreateCustomProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	product, svcErr := catalogService().CreateCustomProduct(userID, req.Price, req.Quantity, req.SelectedParts)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// bindProductForm reads the multipart product form shared by create and
// update. Reports its own binding errors; the bool result says whether the
// input is usable.
func bindProductForm(c *gin.Context) (services.ProductInput, bool) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	priceStr := c.PostForm("price")

	if name == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name and price are required",
			},
		})
		return services.ProductInput{}, false
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "You must enter the valid price!",
			},
		})
		return services.ProductInput{}, false
	}

	input := services.ProductInput{
		Name:          name,
		Price:         price,
		Description:   description,
		SelectedParts: c.PostForm("selected_parts"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		input.Images = form.File["images"]
	}

	return input, true
}

// parseID reads a numeric path parameter, reporting its own error response
func parseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid id in URL",
			},
		})
		return 0, err
	}
	return uint(id), nil
}

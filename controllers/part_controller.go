package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoppy-store/shoppy-api/services"
)

// ListParts handles GET /api/v1/parts - all parts with categories,
// characteristics and images
func ListParts(c *gin.Context) {
	parts, err := catalogService().ListParts()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    parts,
	})
}

// CreatePart handles POST /api/v1/parts - creates a part from a multipart
// form with parallel c_name[]/c_value[] characteristic arrays (admins only)
func CreatePart(c *gin.Context) {
	name := c.PostForm("name")
	priceStr := c.PostForm("price")
	categoryStr := c.PostForm("category_id")

	if name == "" || priceStr == "" || categoryStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name, price and category_id are required",
			},
		})
		return
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
		return
	}

	categoryID, err := strconv.ParseUint(categoryStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid category id",
			},
		})
		return
	}

	input := services.PartInput{
		Name:       name,
		Price:      price,
		CategoryID: uint(categoryID),
	}

	// Characteristic names and values arrive as parallel form arrays
	names := c.PostFormArray("c_name[]")
	values := c.PostFormArray("c_value[]")
	if len(names) != len(values) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Mismatched characteristic names and values",
			},
		})
		return
	}
	for i := range names {
		input.Characteristics = append(input.Characteristics, services.CharacteristicInput{
			Name:  names[i],
			Value: values[i],
		})
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		input.Images = form.File["images"]
	}

	part, svcErr := catalogService().CreatePart(input)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    part,
	})
}

// NameRequest is the body for creating reference-data entries
type NameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories handles GET /api/v1/categories
func ListCategories(c *gin.Context) {
	categories, err := catalogService().ListCategories()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// CreateCategory handles POST /api/v1/categories (admins only)
func CreateCategory(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	category, err := catalogService().CreateCategory(req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// ListCharacteristicNames handles GET /api/v1/characteristic-names
func ListCharacteristicNames(c *gin.Context) {
	names, err := catalogService().ListCharacteristicNames()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    names,
	})
}

// CreateCharacteristicName handles POST /api/v1/characteristic-names
// (admins only)
func CreateCharacteristicName(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	name, err := catalogService().CreateCharacteristicName(req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    name,
	})
}

package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoppy-store/shoppy-api/config"
	"github.com/shoppy-store/shoppy-api/middleware"
	"github.com/shoppy-store/shoppy-api/services"
)

// Controllers build their services per request from the shared database
// handle, so tests can swap the database and stores freely.

func catalogService() *services.CatalogService {
	cfg := config.GetConfig()
	return services.NewCatalogService(config.GetDB(), services.GetImageStore(),
		cfg.ProductImageDir, cfg.PartImageDir)
}

func cartService() *services.CartService {
	return services.NewCartService(config.GetDB())
}

func orderService() *services.OrderService {
	return services.NewOrderService(config.GetDB(), services.GetMailer())
}

func reportService() *services.ReportService {
	return services.NewReportService(orderService())
}

func authService() *services.AuthService {
	return services.NewAuthService(config.GetDB())
}

// handleServiceError maps the service error taxonomy onto HTTP statuses in
// the standard response envelope. Anything outside the taxonomy is an
// internal failure: logged, not leaked.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    validationErr.Code,
				"message": validationErr.Message,
			},
		})
		return
	}

	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    conflictErr.Code,
				"message": conflictErr.Message,
			},
		})
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    notFoundErr.Code,
				"message": notFoundErr.Message,
			},
		})
		return
	}

	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    authErr.Code,
				"message": authErr.Message,
			},
		})
		return
	}

	var mwAuthErr *middleware.AuthError
	if errors.As(err, &mwAuthErr) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    mwAuthErr.Code,
				"message": mwAuthErr.Message,
			},
		})
		return
	}

	log.Printf("internal error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Something went wrong",
		},
	})
}

// bindingError responds with a 400 for malformed request data
func bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shoppy-store/shoppy-api/config"
	"github.com/shoppy-store/shoppy-api/controllers"
	"github.com/shoppy-store/shoppy-api/middleware"
	"github.com/shoppy-store/shoppy-api/models"
	"github.com/shoppy-store/shoppy-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Shoppy storefront API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.CharacteristicName{},
		&models.Characteristic{},
		&models.Part{},
		&models.PartImage{},
		&models.Product{},
		&models.ProductImage{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Load the checkout country selector reference data
	if err := config.LoadCountries(cfg.CountriesFile); err != nil {
		log.Fatalf("Failed to load countries: %v", err)
	}

	// Initialize the image store backend
	if cfg.ImageStorage == "s3" {
		store, err := services.NewS3ImageStore()
		if err != nil {
			log.Fatalf("Failed to initialize S3 image store: %v", err)
		}
		services.InitImageStore(store)
		log.Println("Using S3 image storage")
	} else {
		services.InitImageStore(services.NewLocalImageStore(""))
		log.Println("Using local image storage")
	}

	// Initialize the notification dispatcher. A misconfigured relay is fatal;
	// an unconfigured one just disables notifications.
	if cfg.SMTPUsername == "" {
		services.InitMailer(services.NopMailer{})
		log.Println("SMTP not configured, order notifications disabled")
	} else {
		dispatcher, err := services.NewDispatcher(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to mail relay: %v", err)
		}
		defer dispatcher.Close()
		services.InitMailer(dispatcher)
	}

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all API routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Authentication
		v1.POST("/auth/register", controllers.Register)
		v1.POST("/auth/login", controllers.Login)

		// Public catalog
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:id", controllers.GetProduct)
		v1.GET("/parts", controllers.ListParts)
		v1.GET("/categories", controllers.ListCategories)
		v1.GET("/characteristic-names", controllers.ListCharacteristicNames)
		v1.GET("/checkout/countries", controllers.ListCountries)

		// Authenticated storefront
		auth := v1.Group("", middleware.RequireAuth(cfg))
		{
			auth.POST("/auth/logout", controllers.Logout)
			auth.POST("/products/custom", controllers.CreateCustomProduct)
			auth.POST("/cart", controllers.AddToCart)
			auth.GET("/cart", controllers.GetCart)
			auth.DELETE("/cart/:productId", controllers.RemoveFromCart)
			auth.POST("/checkout", controllers.Checkout)
		}

		// Admin back-office
		admin := v1.Group("", middleware.RequireAuth(cfg), middleware.RequireAdmin())
		{
			admin.POST("/products", controllers.CreateProduct)
			admin.PUT("/products/:id", controllers.UpdateProduct)
			admin.DELETE("/products/:id", controllers.DeleteProduct)
			admin.POST("/parts", controllers.CreatePart)
			admin.POST("/categories", controllers.CreateCategory)
			admin.POST("/characteristic-names", controllers.CreateCharacteristicName)
			admin.GET("/orders", controllers.ListOrders)
			admin.POST("/orders/:id/send", controllers.SendOrder)
			admin.POST("/orders/:id/reject", controllers.RejectOrder)
			admin.GET("/orders/report", controllers.GenerateReport)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Shoppy storefront API is running",
	})
}

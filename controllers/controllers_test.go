package controllers

import (
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shoppy-store/shoppy-api/config"
	"github.com/shoppy-store/shoppy-api/models"
	"github.com/shoppy-store/shoppy-api/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Foreign keys on, like the production schema
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.Part{},
		&models.PartImage{},
		&models.Category{},
		&models.Characteristic{},
		&models.CharacteristicName{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderLine{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupTestEnv wires the shared singletons (database, config, image store,
// mailer) to in-memory test doubles and returns the doubles for inspection.
func setupTestEnv(t *testing.T) (*gorm.DB, *services.MockImageStore, *services.MockMailer) {
	db := setupTestDB(t)
	config.SetDB(db)

	config.SetConfig(&config.Config{
		GoEnv:           "test",
		JWTSecret:       "controller-test-secret",
		ImageStorage:    "local",
		ProductImageDir: "static/product_images",
		PartImageDir:    "static/part_images",
	})

	store := services.NewMockImageStore()
	services.SetImageStore(store)

	mailer := services.NewMockMailer()
	services.SetMailer(mailer)

	return db, store, mailer
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// mockAuthMiddleware simulates RequireAuth for testing. It sets up the
// context exactly as the real middleware does after validating a token.
func mockAuthMiddleware(userID uint, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shoppy-store/shoppy-api/config"
	"github.com/shoppy-store/shoppy-api/middleware"
	"github.com/shoppy-store/shoppy-api/models"
	"github.com/shoppy-store/shoppy-api/services"
)

// TestJWTSecret signs session tokens in tests
const TestJWTSecret = "test-jwt-secret"

// OpenTestDB opens an in-memory database with the full schema migrated and
// foreign-key enforcement on, matching the constraints AutoMigrate creates
// on the production database
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// TestConfig returns a configuration wired for in-memory testing
func TestConfig() *config.Config {
	return &config.Config{
		GoEnv:           "test",
		JWTSecret:       TestJWTSecret,
		ImageStorage:    "local",
		ProductImageDir: "static/product_images",
		PartImageDir:    "static/part_images",
	}
}

// WireSingletons points the shared singletons (database, config, image
// store, mailer) at test doubles and returns the doubles for inspection
func WireSingletons(t *testing.T) (*gorm.DB, *services.MockImageStore, *services.MockMailer) {
	t.Helper()

	db := OpenTestDB(t)
	config.SetDB(db)
	config.SetConfig(TestConfig())

	store := services.NewMockImageStore()
	services.SetImageStore(store)

	mailer := services.NewMockMailer()
	services.SetMailer(mailer)

	return db, store, mailer
}

// NewAuthToken issues a signed session token for the given user
func NewAuthToken(t *testing.T, userID uint, isAdmin bool) string {
	t.Helper()

	token, err := middleware.IssueToken(TestConfig(), userID, isAdmin)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// SetMockAuthContext sets up a mock authenticated context for testing
func SetMockAuthContext(c *gin.Context, userID uint, isAdmin bool) {
	c.Set("user_id", userID)
	c.Set("is_admin", isAdmin)
}

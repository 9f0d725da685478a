package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shoppy-store/shoppy-api/models"
)

// openTestDB creates a fresh in-memory database with all models migrated.
// Foreign keys are switched on so delete ordering is checked the same way
// the production schema checks it.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

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
	require.NoError(t, err)

	return db
}

// itoa formats a record id for building part tokens in tests
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// seedUser inserts a user and returns it
func seedUser(t *testing.T, db *gorm.DB, email string, admin bool) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x", IsAdmin: admin}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedProduct inserts a catalog product and returns it
func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()

	product := models.Product{Name: name, Price: price, Description: "test product"}
	require.NoError(t, db.Create(&product).Error)
	return product
}

// seedPart inserts a category and a part under it
func seedPart(t *testing.T, db *gorm.DB, category, name string, price float64) models.Part {
	t.Helper()

	cat := models.Category{Name: category}
	require.NoError(t, db.Create(&cat).Error)
	part := models.Part{Name: name, Price: price, CategoryID: cat.ID}
	require.NoError(t, db.Create(&part).Error)
	return part
}

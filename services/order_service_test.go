package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/shoppy-store/shoppy-api/models"
)

// OrderServiceTestSuite defines the test suite for checkout and fulfillment
type OrderServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	mailer *MockMailer
	svc    *OrderService
	cart   *CartService
	user   models.User
}

// SetupTest runs before each test
func (suite *OrderServiceTestSuite) SetupTest() {
	suite.db = openTestDB(suite.T())
	suite.mailer = NewMockMailer()
	suite.svc = NewOrderService(suite.db, suite.mailer)
	suite.cart = NewCartService(suite.db)
	suite.user = seedUser(suite.T(), suite.db, "customer@test.com", false)
}

func (suite *OrderServiceTestSuite) checkout(country string) *models.Order {
	order, err := suite.svc.Checkout(suite.user.ID, CheckoutInput{
		PhoneNumber: "+1 555 0100",
		Address:     "1 Main Street",
		Country:     country,
	})
	suite.Require().NoError(err)
	return order
}

func (suite *OrderServiceTestSuite) TestCheckoutEmptyCart() {
	_, err := suite.svc.Checkout(suite.user.ID, CheckoutInput{
		PhoneNumber: "+1 555 0100",
		Address:     "1 Main Street",
		Country:     "United States",
	})
	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)
	suite.Equal("EMPTY_CART", validationErr.Code)
}

func (suite *OrderServiceTestSuite) TestCheckoutTotalAndDomesticShipping() {
	cheap := seedProduct(suite.T(), suite.db, "Office PC", 400)
	pricey := seedProduct(suite.T(), suite.db, "Gaming PC", 1500)
	suite.NoError(suite.cart.Add(suite.user.ID, cheap.ID, 2))
	suite.NoError(suite.cart.Add(suite.user.ID, pricey.ID, 1))

	order := suite.checkout("United States")

	suite.InDelta(2*400+1500, order.TotalPrice, 0.001)
	suite.Zero(order.ShippingPrice, "domestic shipping is free")
	suite.Equal("United States, 1 Main Street", order.Address)
	suite.WithinDuration(time.Now(), order.Date, 5*time.Second)
}

func (suite *OrderServiceTestSuite) TestCheckoutInternationalShippingSurcharge() {
	product := seedProduct(suite.T(), suite.db, "Gaming PC", 1500)
	suite.NoError(suite.cart.Add(suite.user.ID, product.ID, 1))

	order := suite.checkout("Germany")

	suite.InDelta(50, order.ShippingPrice, 0.001)
	suite.Equal("Germany, 1 Main Street", order.Address)
}

func (suite *OrderServiceTestSuite) TestCheckoutMovesCartIntoOrderLines() {
	cheap := seedProduct(suite.T(), suite.db, "Office PC", 400)
	pricey := seedProduct(suite.T(), suite.db, "Gaming PC", 1500)
	suite.NoError(suite.cart.Add(suite.user.ID, cheap.ID, 2))
	suite.NoError(suite.cart.Add(suite.user.ID, pricey.ID, 3))

	order := suite.checkout("United States")

	// Every cart line has a matching order line
	suite.Len(order.Lines, 2)
	quantities := map[uint]int{}
	for _, line := range order.Lines {
		quantities[line.ProductID] = line.Quantity
	}
	suite.Equal(2, quantities[cheap.ID])
	suite.Equal(3, quantities[pricey.ID])

	// And the cart is empty afterwards
	lines, err := suite.cart.Get(suite.user.ID)
	suite.NoError(err)
	suite.Empty(lines)
}

func (suite *OrderServiceTestSuite) TestListFiltersByDateRange() {
	product := seedProduct(suite.T(), suite.db, "PC", 900)

	makeOrder := func(date time.Time) {
		order := models.Order{
			UserID: suite.user.ID, PhoneNumber: "1", Address: "a",
			TotalPrice: 900, ShippingPrice: 0, Date: date,
		}
		suite.NoError(suite.db.Create(&order).Error)
		suite.NoError(suite.db.Create(&models.OrderLine{
			OrderID: order.ID, ProductID: product.ID, Quantity: 1,
		}).Error)
	}

	makeOrder(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	makeOrder(time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)) // inside: end date is inclusive
	makeOrder(time.Date(2024, 3, 6, 0, 1, 0, 0, time.UTC))   // outside: past end+1day boundary

	start, end, err := ParseDateRange("2024-03-01", "2024-03-05")
	suite.NoError(err)

	orders, err := suite.svc.List(start, end)
	suite.NoError(err)
	suite.Len(orders, 2)

	// No bounds returns everything
	all, err := suite.svc.List(nil, nil)
	suite.NoError(err)
	suite.Len(all, 3)
}

func (suite *OrderServiceTestSuite) TestParseDateRangeRejectsMalformedInput() {
	_, _, err := ParseDateRange("2024-03-01", "not-a-date")
	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)
	suite.Equal("INVALID_DATE_FORMAT", validationErr.Code)

	_, _, err = ParseDateRange("03/01/2024", "2024-03-05")
	suite.ErrorAs(err, &validationErr)
}

func (suite *OrderServiceTestSuite) TestOrphanOrderLinesAreRejected() {
	// The test database enforces foreign keys like the production schema,
	// so fulfillment's delete ordering is checked by every Send/Reject test
	err := suite.db.Create(&models.OrderLine{OrderID: 9999, ProductID: 9999, Quantity: 1}).Error
	suite.Error(err, "order lines without a parent order must be rejected")
}

func (suite *OrderServiceTestSuite) TestSendDeletesOrderAndUserComposedProducts() {
	catalog := seedProduct(suite.T(), suite.db, "Catalog PC", 900)
	custom := models.Product{Name: "Your PC", Price: 1100, MadeByUser: true}
	suite.NoError(suite.db.Create(&custom).Error)
	suite.NoError(suite.db.Create(&models.ProductImage{Name: "user-made-pc.jpg", ProductID: custom.ID}).Error)

	suite.NoError(suite.cart.Add(suite.user.ID, catalog.ID, 1))
	suite.NoError(suite.cart.Add(suite.user.ID, custom.ID, 1))
	order := suite.checkout("United States")

	suite.NoError(suite.svc.Send(order.ID))

	// Order and all its lines are gone
	var orders, lines int64
	suite.db.Model(&models.Order{}).Count(&orders)
	suite.db.Model(&models.OrderLine{}).Count(&lines)
	suite.Zero(orders)
	suite.Zero(lines)

	// The user-composed product died with the order, the catalog one remains
	var products []models.Product
	suite.NoError(suite.db.Find(&products).Error)
	suite.Len(products, 1)
	suite.Equal(catalog.ID, products[0].ID)

	var images int64
	suite.db.Model(&models.ProductImage{}).Count(&images)
	suite.Zero(images)
}

func (suite *OrderServiceTestSuite) TestSendNotifiesCustomer() {
	product := seedProduct(suite.T(), suite.db, "Gaming PC", 1500)
	suite.NoError(suite.cart.Add(suite.user.ID, product.ID, 2))
	order := suite.checkout("Germany")

	suite.NoError(suite.svc.Send(order.ID))

	sent := suite.mailer.Sent()
	suite.Require().Len(sent, 1)
	suite.Equal("Order sent", sent[0].Subject)
	suite.Equal("customer@test.com", sent[0].Recipient)
	suite.Contains(sent[0].Body, "Your order has just been sent!")
	suite.Contains(sent[0].Body, "Stated phone number: +1 555 0100")
	suite.Contains(sent[0].Body, "Stated address: Germany, 1 Main Street")
	suite.Contains(sent[0].Body, "Gaming PC(), Quantity: 2, price: 3000$;")
}

func (suite *OrderServiceTestSuite) TestRejectUsesRejectionNotice() {
	product := seedProduct(suite.T(), suite.db, "Gaming PC", 1500)
	suite.NoError(suite.cart.Add(suite.user.ID, product.ID, 1))
	order := suite.checkout("United States")

	suite.NoError(suite.svc.Reject(order.ID))

	sent := suite.mailer.Sent()
	suite.Require().Len(sent, 1)
	suite.Equal("Order rejected", sent[0].Subject)
	suite.Contains(sent[0].Body, "flagged as inappropriate")
}

func (suite *OrderServiceTestSuite) TestDoubleFulfillmentLosesCleanly() {
	product := seedProduct(suite.T(), suite.db, "Gaming PC", 1500)
	suite.NoError(suite.cart.Add(suite.user.ID, product.ID, 1))
	order := suite.checkout("United States")

	suite.NoError(suite.svc.Send(order.ID))

	// The second admin processing the same order gets a clean not-found
	err := suite.svc.Send(order.ID)
	var notFoundErr *NotFoundError
	suite.ErrorAs(err, &notFoundErr)
	suite.Equal("ORDER_NOT_FOUND", notFoundErr.Code)

	// Only one notification went out
	suite.Len(suite.mailer.Sent(), 1)
}

// TestOrderServiceTestSuite runs the test suite
func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

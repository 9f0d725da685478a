package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shoppy-store/shoppy-api/models"
	"github.com/shoppy-store/shoppy-api/services"
)

func seedOrder(t *testing.T, db *gorm.DB, user models.User, date time.Time) models.Order {
	t.Helper()

	product := models.Product{Name: "Gaming PC", Price: 1500}
	require.NoError(t, db.Create(&product).Error)

	order := models.Order{
		UserID:        user.ID,
		TotalPrice:    3000,
		ShippingPrice: 50,
		PhoneNumber:   "+1 555 0100",
		Address:       "Germany, 1 Main St",
		Date:          date,
	}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderLine{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  2,
	}).Error)

	return order
}

func TestListOrders(t *testing.T) {
	db, _, _ := setupTestEnv(t)
	user := seedCartUser(t, db)
	seedOrder(t, db, user, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	seedOrder(t, db, user, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))

	router := setupTestRouter()
	router.GET("/orders", mockAuthMiddleware(user.ID, true), ListOrders)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
		expectedError  string
	}{
		{
			name:           "List all orders",
			query:          "",
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Filter by date range",
			query:          "?start_date=2024-03-01&end_date=2024-03-05",
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:           "End date is inclusive",
			query:          "?start_date=2024-03-01&end_date=2024-03-10",
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Fail with malformed date",
			query:          "?start_date=March&end_date=2024-03-10",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_DATE_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/orders"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			data := response["data"].([]interface{})
			assert.Len(t, data, tt.expectedCount)
		})
	}
}

func TestSendOrder(t *testing.T) {
	db, _, mailer := setupTestEnv(t)
	user := seedCartUser(t, db)
	order := seedOrder(t, db, user, time.Now())

	router := setupTestRouter()
	router.POST("/orders/:id/send", mockAuthMiddleware(1, true), SendOrder)

	req, _ := http.NewRequest(http.MethodPost, "/orders/"+itoa(order.ID)+"/send", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.True(t, response["success"].(bool))

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "Sent orders should be removed")

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, user.Email, sent[0].Recipient)
	assert.Contains(t, sent[0].Body, "Your order has just been sent!")
}

func TestSendOrderNotFound(t *testing.T) {
	db, _, mailer := setupTestEnv(t)
	seedCartUser(t, db)

	router := setupTestRouter()
	router.POST("/orders/:id/send", mockAuthMiddleware(1, true), SendOrder)

	req, _ := http.NewRequest(http.MethodPost, "/orders/9999/send", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := decodeResponse(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "ORDER_NOT_FOUND", errorData["code"])
	assert.Empty(t, mailer.Sent(), "No notification should go out for a missing order")
}

func TestRejectOrder(t *testing.T) {
	db, _, mailer := setupTestEnv(t)
	user := seedCartUser(t, db)
	order := seedOrder(t, db, user, time.Now())

	router := setupTestRouter()
	router.POST("/orders/:id/reject", mockAuthMiddleware(1, true), RejectOrder)

	req, _ := http.NewRequest(http.MethodPost, "/orders/"+itoa(order.ID)+"/reject", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "flagged as inappropriate")
}

func TestGenerateReport(t *testing.T) {
	db, _, _ := setupTestEnv(t)
	user := seedCartUser(t, db)
	seedOrder(t, db, user, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	router := setupTestRouter()
	router.GET("/orders/report", mockAuthMiddleware(1, true), GenerateReport)

	req, _ := http.NewRequest(http.MethodGet, "/orders/report", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.ReportContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Report.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.NotZero(t, w.Body.Len())
}

func TestGenerateReportBadRange(t *testing.T) {
	setupTestEnv(t)

	router := setupTestRouter()
	router.GET("/orders/report", mockAuthMiddleware(1, true), GenerateReport)

	req, _ := http.NewRequest(http.MethodGet, "/orders/report?start_date=bad&end_date=2024-03-10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeResponse(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_DATE_FORMAT", errorData["code"])
}

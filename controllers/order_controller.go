package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoppy-store/shoppy-api/services"
)

// ListOrders handles GET /api/v1/orders - all pending orders, optionally
// restricted to an inclusive start_date / inclusive end_date range
// (YYYY-MM-DD), sorted by date (admins only)
func ListOrders(c *gin.Context) {
	start, end, err := services.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	orders, err := orderService().List(start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// SendOrder handles POST /api/v1/orders/:id/send - marks an order as shipped:
// the order and its lines are removed, user-composed products die with it,
// and the customer is notified (admins only)
func SendOrder(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := orderService().Send(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"sent": id},
	})
}

// RejectOrder handles POST /api/v1/orders/:id/reject - cancels an order with
// the same cascade as sending, but a rejection notification (admins only)
func RejectOrder(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := orderService().Reject(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"rejected": id},
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoppy-store/shoppy-api/services"
)

// GenerateReport handles GET /api/v1/orders/report - streams the order export
// as a downloadable xlsx attachment, one row per order line (admins only)
func GenerateReport(c *gin.Context) {
	start, end, err := services.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	buf, err := reportService().Generate(start, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+services.ReportFilename+`"`)
	c.Data(http.StatusOK, services.ReportContentType, buf.Bytes())
}

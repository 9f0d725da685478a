package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReportFilename is the attachment name of the order export
const ReportFilename = "Report.xlsx"

// ReportContentType is the MIME type for Office Open XML spreadsheets
const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportColumns is the fixed header row, one spreadsheet row per order line
var reportColumns = []string{
	"Email", "Phone Number", "Address", "Date", "Total Price", "Shipping Price",
	"Product", "Product price", "Quantity",
}

// ReportService exports orders as a spreadsheet. Nothing is persisted; the
// workbook is built in memory and streamed back.
type ReportService struct {
	orders *OrderService
}

// NewReportService creates a report service over the given order service
func NewReportService(orders *OrderService) *ReportService {
	return &ReportService{orders: orders}
}

// Generate builds the xlsx workbook for orders in the optional [start, end)
// range and returns its bytes
func (s *ReportService) Generate(start, end *time.Time) (*bytes.Buffer, error) {
	orders, err := s.orders.List(start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	row := 2
	for _, order := range orders {
		for _, line := range order.Lines {
			partNames := make([]string, 0, len(line.Product.Parts))
			for _, part := range line.Product.Parts {
				partNames = append(partNames, part.Name)
			}

			values := []interface{}{
				order.User.Email,
				order.PhoneNumber,
				order.Address,
				order.Date.Format("2006-01-02 15:04:05"),
				order.TotalPrice,
				order.ShippingPrice,
				fmt.Sprintf("%s (%s)", line.Product.Name, strings.Join(partNames, "; ")),
				line.Product.Price, // live unit price, not frozen at order time
				line.Quantity,
			}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return nil, fmt.Errorf("failed to address cell: %w", err)
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, fmt.Errorf("failed to write cell: %w", err)
				}
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}
	return buf, nil
}

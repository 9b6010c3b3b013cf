package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var comparisonHeaders = []string{
	"Supplier", "Quotation No.", "Status", "Submitted", "Total Amount", "Selected",
}

// ExportComparison renders an RFQ's quotation comparison as an xlsx
// workbook, cheapest quotation first.
func (s *RFQService) ExportComparison(ctx context.Context, rfqID string) (*excelize.File, string, error) {
	rfq, rows, err := s.Comparison(ctx, rfqID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Bid Comparison"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range comparisonHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, row := range rows {
		r := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.SupplierName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.QuotationNumber)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Status)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.SubmissionDate.Format(dateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.TotalAmount.StringFixed(2))
		selected := ""
		if row.Selected {
			selected = "yes"
		}
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), selected)
	}

	if rfq.Analysis != nil {
		noteRow := len(rows) + 3
		noteStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		f.SetCellValue(sheet, fmt.Sprintf("A%d", noteRow), "Recommendation")
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", noteRow), fmt.Sprintf("A%d", noteRow), noteStyle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", noteRow), rfq.Analysis.Recommendation)
	}

	colWidths := []float64{28, 18, 14, 12, 14, 10}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("bid_comparison_%s.xlsx", rfq.RFQNumber)
	return f, filename, nil
}

package service

import (
	"fmt"
	"time"

	"github.com/sangkips/warehouse-api/internal/application/calculator"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/enum"
	"github.com/xuri/excelize/v2"
)

const (
	receivingSheet = "Receiving"
	itemsSheet     = "Items"
)

var receivingHeaders = []string{"Received No.", "Date & Time", "Supplier", "Received By", "Total Amount"}

var itemHeaders = []string{
	"Received No.", "System Code", "Supplier Code", "Item Type", "Item Name",
	"Price Box", "Price Case", "Price Bottle", "Price Shell",
	"Qty Box", "Qty Case", "Qty Bottle", "Qty Shell",
	"Amount", "Requires Return",
}

// ExportService renders receiving lists as spreadsheets
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportReceiving writes the transactions to a workbook with a summary sheet and an items sheet
func (s *ExportService) ExportReceiving(transactions []entity.ReceivingTransaction, at time.Time) (*excelize.File, string, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", receivingSheet); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, "", err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	amountStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})

	if err := writeHeader(f, receivingSheet, receivingHeaders, headerStyle); err != nil {
		return nil, "", err
	}
	if err := writeHeader(f, itemsSheet, itemHeaders, headerStyle); err != nil {
		return nil, "", err
	}

	itemRow := 2
	for i, tx := range transactions {
		row := i + 2
		f.SetCellValue(receivingSheet, fmt.Sprintf("A%d", row), tx.ReceiveNo)
		f.SetCellValue(receivingSheet, fmt.Sprintf("B%d", row), tx.DateTime)
		f.SetCellValue(receivingSheet, fmt.Sprintf("C%d", row), tx.Supplier)
		f.SetCellValue(receivingSheet, fmt.Sprintf("D%d", row), tx.ReceivedBy)
		f.SetCellValue(receivingSheet, fmt.Sprintf("E%d", row), calculator.ParseAmount(tx.TotalAmount).InexactFloat64())
		f.SetCellStyle(receivingSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), amountStyle)

		for _, item := range tx.Items {
			values := []interface{}{tx.ReceiveNo, item.SystemCode, item.SupplierCode, item.ItemType, item.ItemName}
			for _, unit := range enum.ReceivingUnits {
				values = append(values, item.SupplierPrice.Get(unit))
			}
			for _, unit := range enum.ReceivingUnits {
				values = append(values, item.Quantity.Get(unit))
			}
			values = append(values, calculator.ParseAmount(item.Amount).InexactFloat64(), item.RequiresReturn)

			cell, _ := excelize.CoordinatesToCellName(1, itemRow)
			if err := f.SetSheetRow(itemsSheet, cell, &values); err != nil {
				return nil, "", err
			}
			itemRow++
		}
	}

	colWidths := []float64{14, 24, 24, 18, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(receivingSheet, col, col, w)
	}

	filename := fmt.Sprintf("receiving_%s.xlsx", at.Format("20060102_150405"))
	return f, filename, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		f.SetCellStyle(sheet, cell, cell, style)
	}
	return nil
}

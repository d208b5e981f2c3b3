package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing"
)

const sheetName = "Transactions"

var exportHeader = []string{
	"Reference", "Kind", "Date", "Paid", "Subtotal", "Tax", "Transit Charges", "Grand Total", "Notes",
}

// WriteXLSX renders the transaction register as a single-sheet workbook
// suitable for download.
func WriteXLSX(transactions []billing.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, tx := range transactions {
		subtotal, _ := tx.Subtotal.Float64()
		tax, _ := tx.Tax.Float64()
		transit, _ := tx.TransitCharges.Float64()
		grand, _ := tx.GrandTotal.Float64()
		row := []any{
			tx.ReferenceNumber,
			tx.Kind(),
			tx.Date.Format("2006-01-02"),
			tx.IsPaid,
			subtotal,
			tax,
			transit,
			grand,
			tx.Notes,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

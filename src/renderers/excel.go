package renderers

import (
	"fmt"

	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/security/validation"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "TOB Tax Report"

var excelHeaders = []interface{}{
	"Date", "Broker", "Stock", "Type", "Shares", "Currency",
	"Amount", "ECB Rate", "EUR Amount", "TOB",
}

var excelColumnWidths = map[string]float64{
	"A": 12, "B": 20, "C": 15, "D": 8, "E": 12,
	"F": 10, "G": 15, "H": 12, "I": 15, "J": 12,
}

// WriteExcel renders the styled spreadsheet artifact. Values are written
// as numbers so spreadsheet software can re-aggregate them; all rounding
// already happened in the tax engine.
func WriteExcel(result *models.PipelineResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("renaming report sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetRow(reportSheet, "A1", &excelHeaders); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	if err := f.SetCellStyle(reportSheet, "A1", "J1", headerStyle); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}

	for i, t := range result.Transactions {
		row := []interface{}{
			t.Date,
			string(t.Broker),
			validation.SanitizeForFormulaInjection(t.Instrument),
			string(t.Side),
			t.Shares,
			t.Currency,
			t.Amount.InexactFloat64(),
			t.Rate.InexactFloat64(),
			t.AmountEUR.InexactFloat64(),
			t.TOB.InexactFloat64(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return fmt.Errorf("writing transaction row %d: %w", i+2, err)
		}
	}

	totalRow := len(result.Transactions) + 2
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("creating totals style: %w", err)
	}
	f.SetCellValue(reportSheet, fmt.Sprintf("A%d", totalRow), "TOTAL")
	f.SetCellValue(reportSheet, fmt.Sprintf("I%d", totalRow), result.TotalEUR.InexactFloat64())
	f.SetCellValue(reportSheet, fmt.Sprintf("J%d", totalRow), result.TotalTOB.InexactFloat64())
	for _, col := range []string{"A", "I", "J"} {
		f.SetCellStyle(reportSheet, fmt.Sprintf("%s%d", col, totalRow), fmt.Sprintf("%s%d", col, totalRow), totalStyle)
	}

	for col, width := range excelColumnWidths {
		if err := f.SetColWidth(reportSheet, col, col, width); err != nil {
			return fmt.Errorf("setting column width for %s: %w", col, err)
		}
	}

	if err := applyNumberFormats(f, totalRow); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func applyNumberFormats(f *excelize.File, lastRow int) error {
	formats := map[string]string{
		"E": "#,##0",    // shares
		"G": "#,##0.00", // amount
		"H": "0.0000",   // rate
		"I": "#,##0.00", // EUR amount
		"J": "#,##0.00", // TOB
	}
	for col, numFmt := range formats {
		fmtStr := numFmt
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &fmtStr})
		if err != nil {
			return fmt.Errorf("creating number format style for column %s: %w", col, err)
		}
		if err := f.SetCellStyle(f.GetSheetName(0), fmt.Sprintf("%s2", col), fmt.Sprintf("%s%d", col, lastRow), style); err != nil {
			return fmt.Errorf("applying number format to column %s: %w", col, err)
		}
	}
	return nil
}

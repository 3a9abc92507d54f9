package renderers

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/security/validation"
	"github.com/username/tobfolio/backend/src/utils"
)

// WriteCSV renders the semicolon-delimited artifact with Belgian number
// formatting, the layout Belgian tax tooling expects.
func WriteCSV(result *models.PipelineResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file '%s': %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = ';'

	header := []string{"Datum", "Broker", "Aandeel", "Type", "Aantal", "Munt", "Bedrag", "Koers", "EUR Bedrag", "TOB"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, t := range result.Transactions {
		record := []string{
			t.Date,
			string(t.Broker),
			validation.SanitizeForFormulaInjection(t.Instrument),
			string(t.Side),
			strconv.FormatInt(t.Shares, 10),
			t.Currency,
			utils.FormatBelgianNumber(t.Amount, 2),
			utils.FormatBelgianNumber(t.Rate, 4),
			utils.FormatBelgianNumber(t.AmountEUR, 2),
			utils.FormatBelgianNumber(t.TOB, 2),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}

	totals := []string{
		"TOTAAL", "", "", "", "", "", "", "",
		utils.FormatBelgianNumber(result.TotalEUR, 2),
		utils.FormatBelgianNumber(result.TotalTOB, 2),
	}
	if err := w.Write(totals); err != nil {
		return fmt.Errorf("writing csv totals row: %w", err)
	}

	w.Flush()
	return w.Error()
}

package renderers

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/utils"
)

// WriteMarkdown renders the human-readable summary document.
func WriteMarkdown(result *models.PipelineResult, generatedAt time.Time, tobRate decimal.Decimal, path string) error {
	var b strings.Builder

	ratePercent := tobRate.Mul(decimal.NewFromInt(100))

	b.WriteString("# Belgian TOB Tax Summary\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total Transactions:** %d\n", len(result.Transactions))
	fmt.Fprintf(&b, "**Total EUR Amount:** €%s\n", utils.FormatBelgianNumber(result.TotalEUR, 2))
	fmt.Fprintf(&b, "**Total TOB Tax:** €%s\n\n", utils.FormatBelgianNumber(result.TotalTOB, 2))

	b.WriteString("## Transactions\n\n")
	b.WriteString("| Date | Broker | Stock | Type | Shares | Currency | Amount | Rate | EUR Amount | TOB |\n")
	b.WriteString("|------|--------|-------|------|--------|----------|--------|------|------------|-----|\n")
	for _, t := range result.Transactions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s | %s | %s | €%s | €%s |\n",
			t.Date,
			t.Broker,
			t.Instrument,
			t.Side,
			t.Shares,
			t.Currency,
			utils.FormatBelgianNumber(t.Amount, 2),
			utils.FormatBelgianNumber(t.Rate, 4),
			utils.FormatBelgianNumber(t.AmountEUR, 2),
			utils.FormatBelgianNumber(t.TOB, 2),
		)
	}

	b.WriteString("\n## Methodology\n\n")
	fmt.Fprintf(&b, "- TOB Rate: %s%%\n", ratePercent.String())
	b.WriteString("- Exchange rates: ECB official rates\n")
	b.WriteString("- Grouping: Same stock + same date + same type = 1 transaction\n")
	b.WriteString("- Day trades: Buy and sell transactions kept separate (both taxed)\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing markdown file '%s': %w", path, err)
	}
	return nil
}

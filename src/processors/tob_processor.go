package processors

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/username/tobfolio/backend/src/models"
)

// TOBCalculator converts each grouped transaction to EUR at its trade-date
// rate and applies the flat TOB rate. Rounding is half away from zero at
// two decimals, applied per row; the TOB is rounded independently of the
// EUR amount, and totals sum the already-rounded values.
type TOBCalculator struct {
	taxRate decimal.Decimal
}

func NewTOBCalculator(taxRate decimal.Decimal) *TOBCalculator {
	return &TOBCalculator{taxRate: taxRate}
}

func (c *TOBCalculator) Calculate(grouped []models.GroupedTransaction, rates models.RateTable) (*models.PipelineResult, error) {
	result := &models.PipelineResult{
		Transactions: make([]models.TaxedTransaction, 0, len(grouped)),
		TotalEUR:     decimal.Zero,
		TotalTOB:     decimal.Zero,
	}

	for _, g := range grouped {
		// A resolver pass over the same date set makes misses impossible,
		// but the lookup is still checked.
		row, ok := rates[g.Date]
		if !ok {
			return nil, fmt.Errorf("%w: no rates for %s", ErrRateUnavailable, g.Date)
		}
		rate, ok := row[g.Currency]
		if !ok {
			return nil, fmt.Errorf("%w: no %s rate on %s", ErrRateUnavailable, g.Currency, g.Date)
		}

		amountEUR := g.Amount.DivRound(rate, 2)
		tob := amountEUR.Mul(c.taxRate).Round(2)

		result.Transactions = append(result.Transactions, models.TaxedTransaction{
			GroupedTransaction: g,
			Rate:               rate,
			AmountEUR:          amountEUR,
			TOB:                tob,
		})
		result.TotalEUR = result.TotalEUR.Add(amountEUR)
		result.TotalTOB = result.TotalTOB.Add(tob)
	}

	return result, nil
}

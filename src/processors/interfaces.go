package processors

import (
	"context"

	"github.com/username/tobfolio/backend/src/models"
)

// StatementGrouper merges same-side raw trades into taxable events.
type StatementGrouper interface {
	Group(raw []models.RawTransaction) []models.GroupedTransaction
}

// ExchangeRateResolver builds the rate table for a set of trade dates.
type ExchangeRateResolver interface {
	Resolve(ctx context.Context, dates []string) (models.RateTable, error)
}

// TaxCalculator converts grouped transactions to EUR and applies the TOB.
type TaxCalculator interface {
	Calculate(grouped []models.GroupedTransaction, rates models.RateTable) (*models.PipelineResult, error)
}

// RateSource supplies the full published history of daily exchange rates
// in a single fetch. Injected so the resolver never reaches for ambient
// state, and so tests can feed a canned history.
type RateSource interface {
	FetchHistory(ctx context.Context) (*models.ECBRateHistory, error)
}

package services

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/username/tobfolio/backend/src/logger"
	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/processors"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

type stubResolver struct {
	table models.RateTable
	err   error
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, dates []string) (models.RateTable, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.table, nil
}

func newTestPipeline(resolver *stubResolver) PipelineService {
	return NewPipelineService(
		processors.NewTransactionGrouper(),
		resolver,
		processors.NewTOBCalculator(decimal.RequireFromString("0.0035")),
	)
}

const ibkrStatement = `Interactive Brokers LLC
Activity Statement
USD
2025-01-10, 09:30:00
ABC 100 10.0000 10.0000 1,000 -1.00 0
2025-01-10, 10:00:00
ABC 50 10.0000 10.0000 500 -0.50 0
`

func TestRunEndToEnd(t *testing.T) {
	resolver := &stubResolver{table: models.RateTable{
		"2025-01-10": {
			"EUR": decimal.NewFromInt(1),
			"USD": decimal.RequireFromString("1.05"),
		},
	}}

	result, err := newTestPipeline(resolver).Run(context.Background(), []StatementText{
		{Name: "january.txt", Text: ibkrStatement},
	})
	require.NoError(t, err)
	require.Equal(t, 1, resolver.calls, "resolver must run exactly once per run")
	require.Len(t, result.Transactions, 1)

	tx := result.Transactions[0]
	require.Equal(t, "2025-01-10", tx.Date)
	require.Equal(t, models.BrokerIBKR, tx.Broker)
	require.Equal(t, "ABC", tx.Instrument)
	require.Equal(t, models.SideBuy, tx.Side)
	require.Equal(t, int64(150), tx.Shares)
	require.Equal(t, 2, tx.MemberCount)
	require.True(t, tx.Amount.Equal(decimal.NewFromInt(1500)), "got %s", tx.Amount)
	require.True(t, tx.AmountEUR.Equal(decimal.RequireFromString("1428.57")), "got %s", tx.AmountEUR)
	require.True(t, tx.TOB.Equal(decimal.RequireFromString("5.00")), "got %s", tx.TOB)
	require.True(t, result.TotalEUR.Equal(decimal.RequireFromString("1428.57")))
	require.True(t, result.TotalTOB.Equal(decimal.RequireFromString("5.00")))
}

// Unknown formats name the offending input and are distinguishable from
// the empty-extraction outcome.
func TestRunUnknownFormat(t *testing.T) {
	resolver := &stubResolver{}

	_, err := newTestPipeline(resolver).Run(context.Background(), []StatementText{
		{Name: "mystery.txt", Text: "Some unrecognizable bank statement"},
	})
	require.ErrorIs(t, err, ErrUnknownFormat)
	require.NotErrorIs(t, err, ErrEmptyExtraction)
	require.Contains(t, err.Error(), "mystery.txt")
	require.Zero(t, resolver.calls)
}

// A recognized broker with zero matching lines is an empty extraction,
// not an unknown format.
func TestRunEmptyExtraction(t *testing.T) {
	resolver := &stubResolver{}

	_, err := newTestPipeline(resolver).Run(context.Background(), []StatementText{
		{Name: "empty.txt", Text: "Interactive Brokers LLC\nActivity Statement\nno trades here"},
	})
	require.ErrorIs(t, err, ErrEmptyExtraction)
	require.NotErrorIs(t, err, ErrUnknownFormat)
	require.Zero(t, resolver.calls)
}

func TestRunResolverFailurePropagates(t *testing.T) {
	resolver := &stubResolver{err: processors.ErrRateUnavailable}

	_, err := newTestPipeline(resolver).Run(context.Background(), []StatementText{
		{Name: "january.txt", Text: ibkrStatement},
	})
	require.ErrorIs(t, err, processors.ErrRateUnavailable)
}

// Raw transactions from all inputs are pooled before grouping, so trades
// split across statements still merge.
func TestRunUnifiesAcrossStatements(t *testing.T) {
	first := "Interactive Brokers LLC\nUSD\n2025-01-10, 09:30:00\nABC 100 10.0000 10.0000 1,000 -1.00 0\n"
	second := "Interactive Brokers LLC\nUSD\n2025-01-10, 10:00:00\nABC 50 10.0000 10.0000 500 -0.50 0\n"

	resolver := &stubResolver{table: models.RateTable{
		"2025-01-10": {
			"EUR": decimal.NewFromInt(1),
			"USD": decimal.RequireFromString("1.05"),
		},
	}}

	result, err := newTestPipeline(resolver).Run(context.Background(), []StatementText{
		{Name: "a.txt", Text: first},
		{Name: "b.txt", Text: second},
	})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	require.Equal(t, int64(150), result.Transactions[0].Shares)
	require.Equal(t, 2, result.Transactions[0].MemberCount)
}

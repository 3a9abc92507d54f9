package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/username/tobfolio/backend/src/models"
)

func rawTx(date, instrument string, side models.Side, shares int64, amount string) models.RawTransaction {
	return models.RawTransaction{
		Date:       date,
		Broker:     models.BrokerIBKR,
		Instrument: instrument,
		Side:       side,
		Shares:     shares,
		Currency:   "USD",
		Amount:     decimal.RequireFromString(amount),
	}
}

func TestGroupMergesSameSideTrades(t *testing.T) {
	raw := []models.RawTransaction{
		rawTx("2025-01-10", "ABC", models.SideBuy, 100, "1000.00"),
		rawTx("2025-01-10", "ABC", models.SideBuy, 50, "500.00"),
	}

	grouped := NewTransactionGrouper().Group(raw)
	require.Len(t, grouped, 1)
	require.Equal(t, int64(150), grouped[0].Shares)
	require.True(t, grouped[0].Amount.Equal(decimal.RequireFromString("1500.00")))
	require.Equal(t, 2, grouped[0].MemberCount)
}

// A buy and a sell of the same instrument on the same day are both
// taxable and must never merge.
func TestGroupKeepsDayTradeSidesSeparate(t *testing.T) {
	raw := []models.RawTransaction{
		rawTx("2025-01-10", "ABC", models.SideBuy, 100, "1000.00"),
		rawTx("2025-01-10", "ABC", models.SideSell, 100, "1010.00"),
	}

	grouped := NewTransactionGrouper().Group(raw)
	require.Len(t, grouped, 2)
	require.NotEqual(t, grouped[0].Side, grouped[1].Side)
}

// Re-grouping singleton transactions built from a grouped set yields the
// same aggregates.
func TestGroupIdempotence(t *testing.T) {
	raw := []models.RawTransaction{
		rawTx("2025-01-10", "ABC", models.SideBuy, 100, "1000.00"),
		rawTx("2025-01-10", "ABC", models.SideBuy, 50, "500.00"),
		rawTx("2025-01-11", "DEF", models.SideSell, 30, "900.00"),
	}
	grouper := NewTransactionGrouper()
	grouped := grouper.Group(raw)

	var singletons []models.RawTransaction
	for _, g := range grouped {
		singletons = append(singletons, models.RawTransaction{
			Date:       g.Date,
			Broker:     g.Broker,
			Instrument: g.Instrument,
			Side:       g.Side,
			Shares:     g.Shares,
			Currency:   g.Currency,
			Amount:     g.Amount,
		})
	}

	regrouped := grouper.Group(singletons)
	require.Len(t, regrouped, len(grouped))
	for i := range grouped {
		require.Equal(t, grouped[i].Shares, regrouped[i].Shares)
		require.True(t, grouped[i].Amount.Equal(regrouped[i].Amount))
		require.Equal(t, 1, regrouped[i].MemberCount)
	}
}

func TestGroupOrdering(t *testing.T) {
	raw := []models.RawTransaction{
		rawTx("2025-01-11", "ZZZ", models.SideBuy, 1, "10.00"),
		rawTx("2025-01-10", "BBB", models.SideBuy, 1, "10.00"),
		rawTx("2025-01-10", "AAA", models.SideBuy, 1, "10.00"),
	}

	grouped := NewTransactionGrouper().Group(raw)
	require.Len(t, grouped, 3)
	require.Equal(t, "AAA", grouped[0].Instrument)
	require.Equal(t, "BBB", grouped[1].Instrument)
	require.Equal(t, "2025-01-11", grouped[2].Date)
}

func TestGroupEmptyInput(t *testing.T) {
	require.Empty(t, NewTransactionGrouper().Group(nil))
}

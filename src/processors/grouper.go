package processors

import (
	"sort"

	"github.com/username/tobfolio/backend/src/models"
)

// TransactionGrouper partitions raw transactions by their GroupKey and
// sums each partition. Buys and sells of the same instrument on the same
// day stay separate: both legs of a day trade are independently taxable.
type TransactionGrouper struct{}

func NewTransactionGrouper() *TransactionGrouper {
	return &TransactionGrouper{}
}

func (g *TransactionGrouper) Group(raw []models.RawTransaction) []models.GroupedTransaction {
	groups := make(map[models.GroupKey]*models.GroupedTransaction)

	for _, tx := range raw {
		key := tx.Key()
		if existing, ok := groups[key]; ok {
			existing.Shares += tx.Shares
			existing.Amount = existing.Amount.Add(tx.Amount)
			existing.MemberCount++
			continue
		}
		groups[key] = &models.GroupedTransaction{
			Date:        tx.Date,
			Broker:      tx.Broker,
			Instrument:  tx.Instrument,
			Side:        tx.Side,
			Shares:      tx.Shares,
			Currency:    tx.Currency,
			Amount:      tx.Amount,
			MemberCount: 1,
		}
	}

	grouped := make([]models.GroupedTransaction, 0, len(groups))
	for _, g := range groups {
		grouped = append(grouped, *g)
	}

	sort.SliceStable(grouped, func(i, j int) bool {
		if grouped[i].Date != grouped[j].Date {
			return grouped[i].Date < grouped[j].Date
		}
		if grouped[i].Broker != grouped[j].Broker {
			return grouped[i].Broker < grouped[j].Broker
		}
		return grouped[i].Instrument < grouped[j].Instrument
	})

	return grouped
}

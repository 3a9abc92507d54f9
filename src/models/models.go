package models

import "github.com/shopspring/decimal"

// BrokerKind identifies which statement format a text blob was produced by.
type BrokerKind string

const (
	BrokerIBKR    BrokerKind = "Interactive Brokers"
	BrokerSaxo    BrokerKind = "Saxo Bank"
	BrokerUnknown BrokerKind = "Unknown"
)

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// RawTransaction is one trade line extracted from a broker statement.
// Shares and Amount are always positive; the direction lives in Side.
type RawTransaction struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	Broker     BrokerKind      `json:"broker"`
	Instrument string          `json:"instrument"`
	Side       Side            `json:"side"`
	Shares     int64           `json:"shares"`
	Currency   string          `json:"currency"`
	Amount     decimal.Decimal `json:"amount"`
}

// GroupKey defines which raw trades merge into one taxable event.
// Opposite-side trades on the same day (day trades) never share a key.
type GroupKey struct {
	Date       string
	Broker     BrokerKind
	Instrument string
	Side       Side
	Currency   string
}

// Key returns the grouping key for a raw transaction.
func (t RawTransaction) Key() GroupKey {
	return GroupKey{
		Date:       t.Date,
		Broker:     t.Broker,
		Instrument: t.Instrument,
		Side:       t.Side,
		Currency:   t.Currency,
	}
}

// GroupedTransaction aggregates the raw transactions sharing one GroupKey.
type GroupedTransaction struct {
	Date        string          `json:"date"`
	Broker      BrokerKind      `json:"broker"`
	Instrument  string          `json:"instrument"`
	Side        Side            `json:"side"`
	Shares      int64           `json:"shares"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	MemberCount int             `json:"grouped_count"`
}

// RateTable maps date (YYYY-MM-DD) to currency code to the ECB rate
// against EUR. EUR itself always maps to exactly 1.
type RateTable map[string]map[string]decimal.Decimal

// TaxedTransaction is a grouped transaction with its EUR conversion and TOB.
type TaxedTransaction struct {
	GroupedTransaction
	Rate      decimal.Decimal `json:"rate"`
	AmountEUR decimal.Decimal `json:"eur_amount"`
	TOB       decimal.Decimal `json:"tob"`
}

// PipelineResult is the terminal artifact of one calculation run.
// Totals are exact sums of the already-rounded per-row values.
type PipelineResult struct {
	Transactions []TaxedTransaction `json:"transactions"`
	TotalEUR     decimal.Decimal    `json:"total_eur"`
	TotalTOB     decimal.Decimal    `json:"total_tob"`
}

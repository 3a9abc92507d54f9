package ibkr

import (
	"regexp"
	"strings"

	"github.com/username/tobfolio/backend/src/logger"
	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/utils"
)

// Currency codes that open a stocks section in an IBKR activity statement.
var sectionCurrencies = map[string]bool{
	"JPY": true, "USD": true, "GBP": true, "EUR": true, "CAD": true,
	"AUD": true, "SEK": true, "NOK": true, "CHF": true, "HKD": true,
	"SGD": true,
}

// Markers that close the current stocks section.
var sectionTerminators = []string{
	"Total in GBP",
	"Forex",
	"Symbol Date/Time Quantity T. Price Proceeds",
}

var dateLineRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2},`)

// IBKRParser implements parsers.StatementParser for Interactive Brokers
// activity statements. The statement text is section-scoped: a bare
// currency code line opens a section, and every trade inside it is a date
// line followed by a whitespace-tokenized data line.
type IBKRParser struct{}

func NewParser() *IBKRParser {
	return &IBKRParser{}
}

func (p *IBKRParser) Parse(text string) ([]models.RawTransaction, error) {
	var txs []models.RawTransaction

	lines := strings.Split(text, "\n")
	currentCurrency := ""

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if sectionCurrencies[line] {
			currentCurrency = line
			continue
		}

		if containsTerminator(line) {
			currentCurrency = ""
		}

		if currentCurrency == "" || !dateLineRegex.MatchString(line) {
			continue
		}

		date := line[:strings.IndexByte(line, ',')]
		if i+1 >= len(lines) {
			continue
		}

		tx, ok := parseDataLine(strings.TrimSpace(lines[i+1]), date, currentCurrency)
		if !ok {
			continue
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// parseDataLine decodes the tokenized line following a date line, e.g.
//
//	3836.T -5,000 1,736.0000 1,730.0000 8,680,000 -4,577.06 ...
//
// Token 0 is the symbol, token 1 the signed quantity. The proceeds column
// sits at index 4 when the converted-price column is present, index 3
// otherwise. Malformed lines are expected noise and reported as !ok.
func parseDataLine(line, date, currency string) (models.RawTransaction, bool) {
	parts := strings.Fields(line)
	if len(parts) < 5 {
		return models.RawTransaction{}, false
	}

	symbol := parts[0]

	quantity, err := utils.ParseGroupedInt(parts[1])
	if err != nil {
		return models.RawTransaction{}, false
	}

	proceedsToken := parts[3]
	if hasConvertedPrice(parts[3]) {
		proceedsToken = parts[4]
	}
	proceeds, err := utils.ParseGroupedDecimal(proceedsToken)
	if err != nil {
		if logger.L != nil {
			logger.L.Debug("IBKR parser: skipping row with unparseable proceeds", "symbol", symbol, "token", proceedsToken)
		}
		return models.RawTransaction{}, false
	}

	// Per-currency subtotal rows carry no trade.
	if strings.HasPrefix(symbol, "Total") {
		return models.RawTransaction{}, false
	}

	// Currency-pair symbols (USD.JPY etc.) are forex, not equities.
	if isCurrencyPair(symbol) {
		return models.RawTransaction{}, false
	}

	if quantity == 0 || proceeds.IsZero() {
		return models.RawTransaction{}, false
	}

	side := models.SideBuy
	if quantity < 0 {
		side = models.SideSell
	}

	return models.RawTransaction{
		Date:       date,
		Broker:     models.BrokerIBKR,
		Instrument: symbol,
		Side:       side,
		Shares:     utils.AbsInt64(quantity),
		Currency:   currency,
		Amount:     proceeds.Abs(),
	}, true
}

// hasConvertedPrice reports whether a token looks like a per-unit price
// column rather than a proceeds column: price columns carry exactly four
// decimal places (e.g. "1,736.0000"), proceeds do not.
func hasConvertedPrice(token string) bool {
	idx := strings.LastIndexByte(token, '.')
	if idx < 0 {
		return false
	}
	return len(token)-idx-1 == 4
}

// isCurrencyPair reports whether a symbol encodes two 3-letter currency
// codes joined by a dot, e.g. "USD.JPY".
func isCurrencyPair(symbol string) bool {
	parts := strings.Split(symbol, ".")
	return len(parts) == 2 && len(parts[0]) == 3 && len(parts[1]) == 3
}

func containsTerminator(line string) bool {
	for _, marker := range sectionTerminators {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

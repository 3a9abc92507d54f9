package saxo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/tobfolio/backend/src/logger"
	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/utils"
)

// Dutch month abbreviations used in Saxo "Transactie- en saldorapport" dates.
var monthMap = map[string]int{
	"jan": 1, "feb": 2, "mrt": 3, "apr": 4, "mei": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "okt": 10, "nov": 11, "dec": 12,
}

var (
	dateRegex     = regexp.MustCompile(`(?i)^(\d{1,2})-(jan|feb|mrt|apr|mei|jun|jul|aug|sep|okt|nov|dec)-(\d{4})`)
	currencyRegex = regexp.MustCompile(`\b(EUR|USD|GBP|CAD|AUD|JPY|CHF|SEK|NOK)\b`)

	// Primary share pattern: side marker, one order-status word, signed count.
	// The looser alternate pattern is only tried when the primary misses;
	// its precedence is kept as-is from the reference behaviour.
	sharesRegex    = regexp.MustCompile(`(Koop|Verkoop)\s+\w+\s+(-?\d+(?:\.\d+)?)`)
	sharesAltRegex = regexp.MustCompile(`(Koop|Verkoop).*?(-?\d+(?:\.\d+)?)\s+[\d,]+`)

	// Belgian-format monetary candidates, e.g. "-26.625,96".
	amountRegex = regexp.MustCompile(`-?[\d.]+,\d{2}`)
)

const equitiesMarker = "Aandelen"

// Candidates below this absolute value are unit exchange rates (typically
// around 1,0000), never booking amounts.
var amountFloor = decimal.NewFromInt(2)

// SaxoParser implements parsers.StatementParser for Saxo Bank transaction
// reports. Unlike the IBKR format there is no section state: every line is
// matched independently.
type SaxoParser struct{}

func NewParser() *SaxoParser {
	return &SaxoParser{}
}

func (p *SaxoParser) Parse(text string) ([]models.RawTransaction, error) {
	var txs []models.RawTransaction

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		// Cash movements share the date pattern but are not trades.
		if strings.Contains(line, "Cashbedrag") || strings.Contains(line, "Storting/opname") {
			continue
		}

		date, ok := parseDate(line)
		if !ok {
			continue
		}
		if !strings.Contains(line, equitiesMarker) {
			continue
		}
		if !strings.Contains(line, "Koop") && !strings.Contains(line, "Verkoop") {
			continue
		}

		tx, ok := parseTradeLine(line, date)
		if !ok {
			if logger.L != nil {
				logger.L.Debug("Saxo parser: skipping unparseable trade line", "line", line)
			}
			continue
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// parseDate matches a leading DD-mmm-YYYY token and normalizes it to
// YYYY-MM-DD.
func parseDate(line string) (string, bool) {
	m := dateRegex.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month := monthMap[strings.ToLower(m[2])]
	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
}

func parseTradeLine(line, date string) (models.RawTransaction, bool) {
	// Instrument name sits between the equities marker and the first
	// recognized currency code after it.
	idx := strings.Index(line, equitiesMarker)
	afterMarker := strings.TrimSpace(line[idx+len(equitiesMarker):])

	currencyLoc := currencyRegex.FindStringIndex(afterMarker)
	if currencyLoc == nil {
		return models.RawTransaction{}, false
	}
	currency := afterMarker[currencyLoc[0]:currencyLoc[1]]
	instrument := strings.TrimSpace(afterMarker[:currencyLoc[0]])

	side := models.SideSell
	if strings.Contains(line, "Koop") {
		side = models.SideBuy
	}

	shares, ok := parseShares(line)
	if !ok || shares == 0 {
		return models.RawTransaction{}, false
	}

	amount, ok := pickBookingAmount(line)
	if !ok {
		return models.RawTransaction{}, false
	}

	return models.RawTransaction{
		Date:       date,
		Broker:     models.BrokerSaxo,
		Instrument: instrument,
		Side:       side,
		Shares:     shares,
		Currency:   currency,
		Amount:     amount,
	}, true
}

func parseShares(line string) (int64, bool) {
	m := sharesRegex.FindStringSubmatch(line)
	if m == nil {
		m = sharesAltRegex.FindStringSubmatch(line)
	}
	if m == nil {
		return 0, false
	}

	cleaned := strings.NewReplacer(",", "", ".", "").Replace(m[2])
	shares, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return utils.AbsInt64(shares), true
}

// pickBookingAmount collects every Belgian-format candidate on the line
// and keeps the largest absolute value above the rate floor. The booking
// amount is always the biggest monetary figure in the row; smaller
// pattern-matching tokens are prices or unit exchange rates.
func pickBookingAmount(line string) (decimal.Decimal, bool) {
	best := decimal.Zero
	found := false

	for _, candidate := range amountRegex.FindAllString(line, -1) {
		value, err := utils.ParseBelgianDecimal(candidate)
		if err != nil {
			continue
		}
		value = value.Abs()
		if value.LessThan(amountFloor) {
			continue
		}
		if value.GreaterThan(best) {
			best = value
			found = true
		}
	}

	if !found || best.IsZero() {
		return decimal.Zero, false
	}
	return best, true
}

package processors

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/tobfolio/backend/src/logger"
	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/utils"
)

var (
	// ErrRateUnavailable means no published rate exists for a requested
	// date within the fallback window.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	// ErrRateSourceUnreachable means the historical feed could not be
	// fetched or decoded. The fetch is never retried.
	ErrRateSourceUnreachable = errors.New("exchange rate source unreachable")
)

// The ECB feed omits weekends and holidays. Searching a few calendar days
// backward approximates "previous business day" without a holiday calendar.
const rateFallbackDays = 5

const referenceCurrency = "EUR"

var oneRate = decimal.NewFromInt(1)

// ECBClient fetches the ECB eurofxref historical rates XML document.
type ECBClient struct {
	url        string
	httpClient *http.Client
}

func NewECBClient(url string, timeout time.Duration) *ECBClient {
	return &ECBClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ECBClient) FetchHistory(ctx context.Context) (*models.ECBRateHistory, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building rate feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rate feed from '%s': %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate feed '%s' returned status %d", c.url, resp.StatusCode)
	}

	var history models.ECBRateHistory
	if err := xml.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, fmt.Errorf("decoding rate feed XML: %w", err)
	}

	logger.L.Info("Fetched ECB rate history", "url", c.url, "dayCount", len(history.Days))
	return &history, nil
}

// RateResolver turns the published rate history into a RateTable covering
// every requested trade date, reusing the nearest earlier published day
// for dates the feed skips.
type RateResolver struct {
	source RateSource
}

func NewRateResolver(source RateSource) *RateResolver {
	return &RateResolver{source: source}
}

func (r *RateResolver) Resolve(ctx context.Context, dates []string) (models.RateTable, error) {
	history, err := r.source.FetchHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateSourceUnreachable, err)
	}

	published := buildPublishedTable(history)

	table := make(models.RateTable, len(dates))
	for _, date := range dates {
		if row, ok := published[date]; ok {
			table[date] = row
			continue
		}

		row, err := fallbackRow(published, date)
		if err != nil {
			return nil, err
		}
		table[date] = row
	}

	return table, nil
}

// buildPublishedTable indexes the raw feed by date, parsing each observation
// once and injecting the reference currency at exactly 1 into every row.
func buildPublishedTable(history *models.ECBRateHistory) models.RateTable {
	published := make(models.RateTable, len(history.Days))
	for _, day := range history.Days {
		row := make(map[string]decimal.Decimal, len(day.Rates)+1)
		row[referenceCurrency] = oneRate
		for _, obs := range day.Rates {
			rate, err := decimal.NewFromString(obs.Rate)
			if err != nil || !rate.IsPositive() {
				if logger.L != nil {
					logger.L.Warn("Invalid rate observation in feed", "date", day.Time, "currency", obs.Currency, "value", obs.Rate)
				}
				continue
			}
			row[obs.Currency] = rate
		}
		published[day.Time] = row
	}
	return published
}

// fallbackRow searches calendar days (not business days) backward from a
// date missing in the feed and reuses the nearest published day's full row.
func fallbackRow(published models.RateTable, date string) (map[string]decimal.Decimal, error) {
	day, err := utils.ParseISODate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trade date '%s': %v", ErrRateUnavailable, date, err)
	}

	for i := 1; i <= rateFallbackDays; i++ {
		prev := day.AddDate(0, 0, -i).Format(utils.ISODateFormat)
		if row, ok := published[prev]; ok {
			if logger.L != nil {
				logger.L.Debug("Using fallback rate date", "requested", date, "published", prev)
			}
			return row, nil
		}
	}

	return nil, fmt.Errorf("%w: no published rate for %s or %d days prior", ErrRateUnavailable, date, rateFallbackDays)
}

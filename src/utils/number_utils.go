package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseGroupedInt parses an integer that may carry comma group separators,
// e.g. "-5,000" -> -5000. Used for IBKR share quantities.
func ParseGroupedInt(s string) (int64, error) {
	cleaned := strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid grouped integer '%s': %w", s, err)
	}
	return v, nil
}

// ParseGroupedDecimal parses a US/UK formatted number with comma group
// separators and dot decimal separator, e.g. "8,680,000" or "-4,577.06".
func ParseGroupedDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid grouped decimal '%s': %w", s, err)
	}
	return d, nil
}

// ParseBelgianDecimal parses a Belgian/Dutch formatted number with dot group
// separators and comma decimal separator, e.g. "-26.625,96" -> -26625.96.
func ParseBelgianDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(s, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid belgian decimal '%s': %w", s, err)
	}
	return d, nil
}

// FormatBelgianNumber renders a decimal with Belgian locale separators:
// comma for decimals, dot for thousands. e.g. 26625.96 -> "26.625,96".
func FormatBelgianNumber(d decimal.Decimal, decimals int32) string {
	fixed := d.StringFixed(decimals)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed
	fracPart := ""
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		intPart = fixed[:idx]
		fracPart = fixed[idx+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

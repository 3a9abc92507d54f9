package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseGroupedInt(t *testing.T) {
	v, err := ParseGroupedInt("-5,000")
	require.NoError(t, err)
	require.Equal(t, int64(-5000), v)

	v, err = ParseGroupedInt("655")
	require.NoError(t, err)
	require.Equal(t, int64(655), v)

	_, err = ParseGroupedInt("abc")
	require.Error(t, err)
}

func TestParseGroupedDecimal(t *testing.T) {
	d, err := ParseGroupedDecimal("8,680,000")
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.NewFromInt(8680000)))

	d, err = ParseGroupedDecimal("-4,577.06")
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.RequireFromString("-4577.06")))
}

func TestParseBelgianDecimal(t *testing.T) {
	d, err := ParseBelgianDecimal("-26.625,96")
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.RequireFromString("-26625.96")))

	d, err = ParseBelgianDecimal("1,0000")
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.RequireFromString("1.0000")))

	_, err = ParseBelgianDecimal("x,yz")
	require.Error(t, err)
}

func TestFormatBelgianNumber(t *testing.T) {
	require.Equal(t, "26.625,96", FormatBelgianNumber(decimal.RequireFromString("26625.96"), 2))
	require.Equal(t, "-1.428,57", FormatBelgianNumber(decimal.RequireFromString("-1428.57"), 2))
	require.Equal(t, "0,00", FormatBelgianNumber(decimal.Zero, 2))
	require.Equal(t, "1.500", FormatBelgianNumber(decimal.NewFromInt(1500), 0))
	require.Equal(t, "1,0500", FormatBelgianNumber(decimal.RequireFromString("1.05"), 4))
}

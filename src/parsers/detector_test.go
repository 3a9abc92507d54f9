package parsers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/username/tobfolio/backend/src/models"
)

func TestDetectBroker(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.BrokerKind
	}{
		{"ibkr institution marker", "Activity Statement\nInteractive Brokers LLC\nStocks", models.BrokerIBKR},
		{"saxo institution marker", "Saxo Bank A/S\nTransactie- en saldorapport", models.BrokerSaxo},
		{"saxo header keyword only", "Transacties en saldo\n28-nov-2025 ...", models.BrokerSaxo},
		{"no markers", "Some random bank statement text", models.BrokerUnknown},
		{"empty text", "", models.BrokerUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DetectBroker(tt.text))
		})
	}
}

func TestGetParser(t *testing.T) {
	p, err := GetParser(models.BrokerIBKR)
	require.NoError(t, err)
	require.NotNil(t, p)

	p, err = GetParser(models.BrokerSaxo)
	require.NoError(t, err)
	require.NotNil(t, p)

	_, err = GetParser(models.BrokerUnknown)
	require.Error(t, err)
}

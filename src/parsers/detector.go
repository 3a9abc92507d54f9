package parsers

import (
	"strings"

	"github.com/username/tobfolio/backend/src/models"
)

// DetectBroker classifies statement text by its format markers.
// Saxo statements are recognised either by the institution name or by the
// Dutch report header keyword.
func DetectBroker(text string) models.BrokerKind {
	if strings.Contains(text, "Interactive Brokers") {
		return models.BrokerIBKR
	}
	if strings.Contains(text, "Saxo Bank") || strings.Contains(text, "Transacties") {
		return models.BrokerSaxo
	}
	return models.BrokerUnknown
}

package parsers

import (
	"fmt"

	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/parsers/ibkr"
	"github.com/username/tobfolio/backend/src/parsers/saxo"
)

func GetParser(kind models.BrokerKind) (StatementParser, error) {
	switch kind {
	case models.BrokerIBKR:
		return ibkr.NewParser(), nil
	case models.BrokerSaxo:
		return saxo.NewParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for broker: %s", kind)
	}
}

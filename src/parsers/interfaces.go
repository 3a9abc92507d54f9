package parsers

import "github.com/username/tobfolio/backend/src/models"

// StatementParser turns the extracted text of one broker statement into
// raw transactions. Implementations skip lines they cannot parse; they do
// not abort the whole statement on noisy rows.
type StatementParser interface {
	Parse(text string) ([]models.RawTransaction, error)
}

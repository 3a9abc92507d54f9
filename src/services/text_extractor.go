package services

import (
	"fmt"
	"io"

	"github.com/username/tobfolio/backend/src/security/validation"
)

// PlainTextExtractor is the shipped TextExtractor: it handles statement
// dumps that are already plain text. PDF-to-text conversion is an external
// concern behind the same interface.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extract(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading statement text: %w", err)
	}
	return validation.StripUnprintable(string(data)), nil
}

func (e *PlainTextExtractor) Extensions() []string {
	return []string{".txt"}
}

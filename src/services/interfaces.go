package services

import (
	"context"
	"errors"
	"io"

	"github.com/username/tobfolio/backend/src/models"
)

var (
	// ErrUnknownFormat means a statement text matched no known broker
	// marker. Fatal to the run containing it.
	ErrUnknownFormat = errors.New("unknown broker statement format")
	// ErrEmptyExtraction means zero transactions were extracted across
	// all inputs. A distinguished outcome, not a processing failure: the
	// caller turns it into a user-facing warning.
	ErrEmptyExtraction = errors.New("no transactions extracted from statements")
	// ErrReportNotFound means no persisted report exists for an id.
	ErrReportNotFound = errors.New("report not found")
)

// StatementText is the already-extracted plain text of one uploaded
// statement, tagged with its upload name for error messages.
type StatementText struct {
	Name string
	Text string
}

// TextExtractor converts an uploaded statement document into plain text.
// The upload surface restricts file extensions to what the extractor
// declares it handles.
type TextExtractor interface {
	Extract(r io.Reader) (string, error)
	Extensions() []string
}

// PipelineService runs the full calculation over one batch of statement
// texts: detect, extract, group, resolve rates, tax.
type PipelineService interface {
	Run(ctx context.Context, texts []StatementText) (*models.PipelineResult, error)
}

// ReportService wraps the pipeline with artifact rendering, persistence
// and cached lookups.
type ReportService interface {
	GenerateReport(ctx context.Context, texts []StatementText) (*models.Report, error)
	GetReport(id string) (*models.Report, error)
	ArtifactFile(report *models.Report, kind string) (filename string, mimeType string, err error)
}

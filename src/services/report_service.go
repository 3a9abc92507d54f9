package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/username/tobfolio/backend/src/database"
	"github.com/username/tobfolio/backend/src/logger"
	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/renderers"
)

const ckReport = "report_%s"

var artifactMimeTypes = map[string]string{
	"excel":    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"csv":      "text/csv",
	"markdown": "text/markdown",
}

type reportServiceImpl struct {
	pipeline    PipelineService
	reportCache *cache.Cache
	outputDir   string
	tobRate     decimal.Decimal
}

func NewReportService(pipeline PipelineService, reportCache *cache.Cache, outputDir string, tobRate decimal.Decimal) ReportService {
	return &reportServiceImpl{
		pipeline:    pipeline,
		reportCache: reportCache,
		outputDir:   outputDir,
		tobRate:     tobRate,
	}
}

// GenerateReport runs the pipeline over the statement batch, renders all
// artifacts into the output directory and persists the run. Pipeline
// outcomes (ErrEmptyExtraction included) propagate unchanged.
func (s *reportServiceImpl) GenerateReport(ctx context.Context, texts []StatementText) (*models.Report, error) {
	result, err := s.pipeline.Run(ctx, texts)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ID:               uuid.NewString(),
		GeneratedAt:      time.Now(),
		TransactionCount: len(result.Transactions),
		TotalEUR:         result.TotalEUR,
		TotalTOB:         result.TotalTOB,
		Result:           result,
	}
	report.ExcelFile = fmt.Sprintf("tob_report_%s.xlsx", report.ID)
	report.CSVFile = fmt.Sprintf("tob_report_%s.csv", report.ID)
	report.MarkdownFile = fmt.Sprintf("tob_summary_%s.md", report.ID)

	if err := renderers.WriteExcel(result, filepath.Join(s.outputDir, report.ExcelFile)); err != nil {
		return nil, fmt.Errorf("rendering spreadsheet: %w", err)
	}
	if err := renderers.WriteCSV(result, filepath.Join(s.outputDir, report.CSVFile)); err != nil {
		return nil, fmt.Errorf("rendering csv: %w", err)
	}
	if err := renderers.WriteMarkdown(result, report.GeneratedAt, s.tobRate, filepath.Join(s.outputDir, report.MarkdownFile)); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	if err := s.insertReport(report); err != nil {
		return nil, err
	}

	s.reportCache.Set(fmt.Sprintf(ckReport, report.ID), report, cache.DefaultExpiration)
	logger.L.Info("Report generated", "reportID", report.ID, "transactionCount", report.TransactionCount)
	return report, nil
}

func (s *reportServiceImpl) insertReport(report *models.Report) error {
	resultJSON, err := json.Marshal(report.Result)
	if err != nil {
		return fmt.Errorf("marshalling report result: %w", err)
	}

	_, err = database.DB.Exec(
		`INSERT INTO reports (id, generated_at, transaction_count, total_eur, total_tob, excel_file, csv_file, markdown_file, result_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.GeneratedAt, report.TransactionCount,
		report.TotalEUR.String(), report.TotalTOB.String(),
		report.ExcelFile, report.CSVFile, report.MarkdownFile, string(resultJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting report %s: %w", report.ID, err)
	}
	return nil
}

// GetReport looks a report up by id, cache first, then sqlite.
func (s *reportServiceImpl) GetReport(id string) (*models.Report, error) {
	cacheKey := fmt.Sprintf(ckReport, id)
	if cached, found := s.reportCache.Get(cacheKey); found {
		if report, ok := cached.(*models.Report); ok {
			return report, nil
		}
	}

	report := &models.Report{}
	var totalEUR, totalTOB, resultJSON string
	err := database.DB.QueryRow(
		`SELECT id, generated_at, transaction_count, total_eur, total_tob, excel_file, csv_file, markdown_file, result_json
		 FROM reports WHERE id = ?`, id,
	).Scan(&report.ID, &report.GeneratedAt, &report.TransactionCount, &totalEUR, &totalTOB,
		&report.ExcelFile, &report.CSVFile, &report.MarkdownFile, &resultJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying report %s: %w", id, err)
	}

	if report.TotalEUR, err = decimal.NewFromString(totalEUR); err != nil {
		return nil, fmt.Errorf("invalid stored total_eur for report %s: %w", id, err)
	}
	if report.TotalTOB, err = decimal.NewFromString(totalTOB); err != nil {
		return nil, fmt.Errorf("invalid stored total_tob for report %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &report.Result); err != nil {
		return nil, fmt.Errorf("unmarshalling stored result for report %s: %w", id, err)
	}

	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report, nil
}

// ArtifactFile maps a download kind to the report's stored artifact name
// and its Content-Type.
func (s *reportServiceImpl) ArtifactFile(report *models.Report, kind string) (string, string, error) {
	mimeType, ok := artifactMimeTypes[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown artifact kind: %s", kind)
	}
	switch kind {
	case "excel":
		return report.ExcelFile, mimeType, nil
	case "csv":
		return report.CSVFile, mimeType, nil
	default:
		return report.MarkdownFile, mimeType, nil
	}
}

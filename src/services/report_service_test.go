package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/username/tobfolio/backend/src/database"
	"github.com/username/tobfolio/backend/src/models"
)

type stubPipeline struct {
	result *models.PipelineResult
	err    error
}

func (s *stubPipeline) Run(_ context.Context, _ []StatementText) (*models.PipelineResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func pipelineFixture() *models.PipelineResult {
	return &models.PipelineResult{
		Transactions: []models.TaxedTransaction{
			{
				GroupedTransaction: models.GroupedTransaction{
					Date:        "2025-01-10",
					Broker:      models.BrokerIBKR,
					Instrument:  "ABC",
					Side:        models.SideBuy,
					Shares:      150,
					Currency:    "USD",
					Amount:      decimal.RequireFromString("1500.00"),
					MemberCount: 2,
				},
				Rate:      decimal.RequireFromString("1.05"),
				AmountEUR: decimal.RequireFromString("1428.57"),
				TOB:       decimal.RequireFromString("5.00"),
			},
		},
		TotalEUR: decimal.RequireFromString("1428.57"),
		TotalTOB: decimal.RequireFromString("5.00"),
	}
}

func newReportTestService(t *testing.T) (ReportService, *cache.Cache, string) {
	t.Helper()

	database.InitDB(filepath.Join(t.TempDir(), "reports.db"))
	t.Cleanup(func() { database.DB.Close() })

	outputDir := t.TempDir()
	reportCache := cache.New(time.Minute, time.Minute)
	pipeline := &stubPipeline{result: pipelineFixture()}
	svc := NewReportService(pipeline, reportCache, outputDir, decimal.RequireFromString("0.0035"))
	return svc, reportCache, outputDir
}

func TestGenerateReportPersistsAndLooksUpByID(t *testing.T) {
	svc, reportCache, outputDir := newReportTestService(t)

	generated, err := svc.GenerateReport(context.Background(), []StatementText{{Name: "stmt.txt", Text: "irrelevant"}})
	require.NoError(t, err)
	require.NotEmpty(t, generated.ID)
	require.Equal(t, 1, generated.TransactionCount)

	for _, name := range []string{generated.ExcelFile, generated.CSVFile, generated.MarkdownFile} {
		_, statErr := os.Stat(filepath.Join(outputDir, name))
		require.NoError(t, statErr, "artifact %s should exist on disk", name)
	}

	// Flush the cache so the lookup has to go through sqlite.
	reportCache.Flush()

	got, err := svc.GetReport(generated.ID)
	require.NoError(t, err)
	require.Equal(t, generated.ID, got.ID)
	require.Equal(t, generated.TransactionCount, got.TransactionCount)
	require.True(t, generated.TotalEUR.Equal(got.TotalEUR), "total_eur should survive the round trip")
	require.True(t, generated.TotalTOB.Equal(got.TotalTOB), "total_tob should survive the round trip")
	require.Equal(t, generated.ExcelFile, got.ExcelFile)
	require.Equal(t, generated.CSVFile, got.CSVFile)
	require.Equal(t, generated.MarkdownFile, got.MarkdownFile)

	require.NotNil(t, got.Result)
	require.Len(t, got.Result.Transactions, 1)
	tx := got.Result.Transactions[0]
	require.Equal(t, "ABC", tx.Instrument)
	require.Equal(t, 2, tx.MemberCount)
	require.True(t, tx.AmountEUR.Equal(decimal.RequireFromString("1428.57")))
	require.True(t, tx.TOB.Equal(decimal.RequireFromString("5.00")))
}

func TestGetReportServesCachedEntry(t *testing.T) {
	svc, _, _ := newReportTestService(t)

	generated, err := svc.GenerateReport(context.Background(), []StatementText{{Name: "stmt.txt", Text: "irrelevant"}})
	require.NoError(t, err)

	got, err := svc.GetReport(generated.ID)
	require.NoError(t, err)
	require.Equal(t, generated.ID, got.ID)
}

func TestGetReportUnknownID(t *testing.T) {
	svc, _, _ := newReportTestService(t)

	_, err := svc.GetReport("no-such-report")
	require.ErrorIs(t, err, ErrReportNotFound)
	require.Contains(t, err.Error(), "no-such-report")
}

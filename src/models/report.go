package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is one persisted calculation run plus the artifacts rendered
// from it. The artifact fields hold file names relative to the output
// directory.
type Report struct {
	ID               string          `json:"id"`
	GeneratedAt      time.Time       `json:"generated_at"`
	TransactionCount int             `json:"total_transactions"`
	TotalEUR         decimal.Decimal `json:"total_eur"`
	TotalTOB         decimal.Decimal `json:"total_tob"`
	ExcelFile        string          `json:"excel_file"`
	CSVFile          string          `json:"csv_file"`
	MarkdownFile     string          `json:"markdown_file"`
	Result           *PipelineResult `json:"result"`
}

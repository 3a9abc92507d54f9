package services

import (
	"context"
	"fmt"
	"time"

	"github.com/username/tobfolio/backend/src/logger"
	"github.com/username/tobfolio/backend/src/models"
	"github.com/username/tobfolio/backend/src/parsers"
	"github.com/username/tobfolio/backend/src/processors"
)

type pipelineServiceImpl struct {
	grouper    processors.StatementGrouper
	resolver   processors.ExchangeRateResolver
	calculator processors.TaxCalculator
}

func NewPipelineService(
	grouper processors.StatementGrouper,
	resolver processors.ExchangeRateResolver,
	calculator processors.TaxCalculator,
) PipelineService {
	return &pipelineServiceImpl{
		grouper:    grouper,
		resolver:   resolver,
		calculator: calculator,
	}
}

// Run processes each statement to completion before the next. The rate
// resolver is invoked exactly once, after grouping, over the union of all
// inputs.
func (s *pipelineServiceImpl) Run(ctx context.Context, texts []StatementText) (*models.PipelineResult, error) {
	startTime := time.Now()
	logger.L.Info("Pipeline run START", "statementCount", len(texts))

	var allRaw []models.RawTransaction
	for _, st := range texts {
		kind := parsers.DetectBroker(st.Text)
		if kind == models.BrokerUnknown {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, st.Name)
		}

		parser, err := parsers.GetParser(kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnknownFormat, st.Name, err)
		}

		raw, err := parser.Parse(st.Text)
		if err != nil {
			return nil, fmt.Errorf("extracting transactions from %s: %w", st.Name, err)
		}

		logger.L.Info("Statement extracted", "name", st.Name, "broker", kind, "transactionCount", len(raw))
		allRaw = append(allRaw, raw...)
	}

	if len(allRaw) == 0 {
		return nil, ErrEmptyExtraction
	}

	grouped := s.grouper.Group(allRaw)

	rates, err := s.resolver.Resolve(ctx, distinctDates(grouped))
	if err != nil {
		return nil, err
	}

	result, err := s.calculator.Calculate(grouped, rates)
	if err != nil {
		return nil, err
	}

	logger.L.Info("Pipeline run END",
		"rawCount", len(allRaw),
		"groupedCount", len(grouped),
		"totalEUR", result.TotalEUR.String(),
		"totalTOB", result.TotalTOB.String(),
		"durationMs", time.Since(startTime).Milliseconds())
	return result, nil
}

func distinctDates(grouped []models.GroupedTransaction) []string {
	seen := make(map[string]bool, len(grouped))
	var dates []string
	for _, g := range grouped {
		if !seen[g.Date] {
			seen[g.Date] = true
			dates = append(dates, g.Date)
		}
	}
	return dates
}

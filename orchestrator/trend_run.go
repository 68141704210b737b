// ABOUTME: This file orchestrates one trend run: scrape, analyze, persist
// ABOUTME: Any failure propagates so the trends command exits non-zero
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
	"github.com/alt-project/newsforge/output"
	"github.com/alt-project/newsforge/repository"
)

// HotListFetcher scrapes the trending aggregator.
// Satisfied by driver.HotListClient.
type HotListFetcher interface {
	FetchHotList(ctx context.Context) ([]domain.HotItem, error)
}

// Analyzer turns a scraped list into a markdown analysis.
// Satisfied by service.TrendAnalyzer.
type Analyzer interface {
	Analyze(ctx context.Context, items []domain.HotItem) (string, error)
}

// TrendWriter persists the raw list and the report.
// Satisfied by repository.TrendRepository.
type TrendWriter interface {
	SaveRun(items []domain.HotItem, analysis string) (repository.RunFiles, error)
}

// TrendRun is the one-shot trend pipeline. Unlike the batch orchestrator it
// is all-or-nothing: the first error aborts the run.
type TrendRun struct {
	cfg      *config.Config
	fetcher  HotListFetcher
	analyzer Analyzer
	trends   TrendWriter
	printer  *output.Printer
	logger   *slog.Logger
}

// NewTrendRun wires the trend pipeline together.
func NewTrendRun(
	cfg *config.Config,
	fetcher HotListFetcher,
	analyzer Analyzer,
	trends TrendWriter,
	printer *output.Printer,
	logger *slog.Logger,
) *TrendRun {
	return &TrendRun{
		cfg:      cfg,
		fetcher:  fetcher,
		analyzer: analyzer,
		trends:   trends,
		printer:  printer,
		logger:   logger,
	}
}

// Run executes one scrape-analyze-persist cycle.
func (t *TrendRun) Run(ctx context.Context) error {
	t.logger.Info("trend run started", "url", t.cfg.Trends.URL)

	items, err := t.fetcher.FetchHotList(ctx)
	if err != nil {
		return fmt.Errorf("fetching hot list: %w", err)
	}

	t.printer.HotListSummary(items, t.cfg.Trends.TopN)

	analysis, err := t.analyzer.Analyze(ctx, items)
	if err != nil {
		return err
	}

	files, err := t.trends.SaveRun(items, analysis)
	if err != nil {
		return err
	}

	t.logger.Info("trend run finished",
		"items", len(items),
		"raw", files.RawPath,
		"report", files.ReportPath)
	t.printer.Success("Trend report written to %s", files.ReportPath)

	return nil
}

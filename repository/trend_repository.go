// ABOUTME: This file persists one trend run as a raw JSON list plus a linked markdown report
// ABOUTME: Both files are timestamp-named; the report links back to the raw data relatively
package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
)

const trendTimeLayout = "20060102_150405"

// RunFiles names the pair of files one trend run produces.
type RunFiles struct {
	RawPath    string
	ReportPath string
}

// TrendRepository writes trend-run artifacts into the trends directory.
type TrendRepository struct {
	trendsDir string
	logger    *slog.Logger
	now       func() time.Time
}

// NewTrendRepository creates a trend repository from the loaded configuration.
func NewTrendRepository(cfg *config.Config, logger *slog.Logger) *TrendRepository {
	return &TrendRepository{
		trendsDir: cfg.Pipeline.TrendsDir,
		logger:    logger,
		now:       time.Now,
	}
}

// SaveRun persists the scraped list verbatim (scrape order, 2-space indent)
// and the analysis as a markdown report linking back to the raw file.
func (r *TrendRepository) SaveRun(items []domain.HotItem, analysis string) (RunFiles, error) {
	now := r.now()
	stamp := now.Format(trendTimeLayout)

	rawName := fmt.Sprintf("hotlist_%s.json", stamp)
	reportName := fmt.Sprintf("trend_report_%s.md", stamp)

	files := RunFiles{
		RawPath:    filepath.Join(r.trendsDir, rawName),
		ReportPath: filepath.Join(r.trendsDir, reportName),
	}

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return RunFiles{}, fmt.Errorf("marshaling hot list: %w", err)
	}

	if err := os.WriteFile(files.RawPath, raw, 0o644); err != nil {
		return RunFiles{}, fmt.Errorf("writing raw hot list %s: %w", files.RawPath, err)
	}

	report := renderReport(domain.TrendReport{
		GeneratedAt: now,
		RawDataFile: rawName,
		Analysis:    analysis,
	})

	if err := os.WriteFile(files.ReportPath, []byte(report), 0o644); err != nil {
		return RunFiles{}, fmt.Errorf("writing trend report %s: %w", files.ReportPath, err)
	}

	r.logger.Info("trend run saved",
		"raw", files.RawPath,
		"report", files.ReportPath,
		"items", len(items))

	return files, nil
}

func renderReport(report domain.TrendReport) string {
	return fmt.Sprintf(`# Trend Analysis Report

Generated: %s

Raw data: [%s](%s)

%s
`, report.GeneratedAt.Format(time.RFC3339), report.RawDataFile, report.RawDataFile, report.Analysis)
}

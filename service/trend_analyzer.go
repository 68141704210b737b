package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
	"github.com/alt-project/newsforge/driver"
)

const analyzerSystemRole = "You are a content strategist for a new-media studio. You read trending-topic " +
	"lists and identify which topics are worth producing content for, always answering in markdown."

const analyzePromptTemplate = `Below are today's trending topics in scrape order.

%s

Produce a markdown analysis with:
1. The topics with the highest virality potential right now and why.
2. Exactly five concrete content angles (one line of working title + 2-3 sentences of rationale each).
3. Which audience each angle targets.`

// TrendAnalyzer asks the model for a traffic-potential analysis of a scraped
// hot list.
type TrendAnalyzer struct {
	model    ModelClient
	mockMode bool
	topN     int
	logger   *slog.Logger
}

// NewTrendAnalyzer creates an analyzer from the loaded configuration.
func NewTrendAnalyzer(cfg *config.Config, model ModelClient, logger *slog.Logger) *TrendAnalyzer {
	return &TrendAnalyzer{
		model:    model,
		mockMode: cfg.LLM.MockMode,
		topN:     cfg.Trends.TopN,
		logger:   logger,
	}
}

// Analyze renders the first topN items (scrape order) into a numbered block
// and requests the analysis. Mock mode returns a fixed placeholder. Model
// errors and unexpected shapes propagate: the trends run is all-or-nothing.
func (a *TrendAnalyzer) Analyze(ctx context.Context, items []domain.HotItem) (string, error) {
	if a.mockMode {
		a.logger.Info("mock mode: skipping trend analysis model call", "items", len(items))
		return mockAnalysis(len(items)), nil
	}

	selected := items
	if len(selected) > a.topN {
		selected = selected[:a.topN]
	}

	prompt := fmt.Sprintf(analyzePromptTemplate, renderItems(selected))

	result, err := a.model.Complete(ctx, analyzerSystemRole, prompt)
	if err != nil {
		return "", fmt.Errorf("analyzing trends: %w", err)
	}

	if result.Kind != driver.TextResult {
		return "", fmt.Errorf("analyzing trends: %w: %s", domain.ErrUnexpectedShape, result.Detail)
	}

	return result.Text, nil
}

func renderItems(items []domain.HotItem) string {
	var b strings.Builder

	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s", i+1, item.Title)
		if item.Source != "" {
			fmt.Fprintf(&b, " [%s]", item.Source)
		}
		if item.Hot != "" {
			fmt.Fprintf(&b, " (%s)", item.Hot)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func mockAnalysis(count int) string {
	return fmt.Sprintf(`## 趋势分析 (mock)

[MOCK] Trend analysis placeholder covering %d scraped items.

## 内容选题建议
1. [MOCK] angle one
2. [MOCK] angle two
3. [MOCK] angle three
4. [MOCK] angle four
5. [MOCK] angle five`, count)
}

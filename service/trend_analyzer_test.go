package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
	"github.com/alt-project/newsforge/driver"
)

func analyzerConfig(mock bool, topN int) *config.Config {
	return &config.Config{
		LLM:    config.LLMConfig{MockMode: mock},
		Trends: config.TrendsConfig{TopN: topN},
	}
}

func hotItems(n int) []domain.HotItem {
	items := make([]domain.HotItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.HotItem{
			Rank:   fmt.Sprintf("%d", i+1),
			Title:  fmt.Sprintf("topic %d", i+1),
			Link:   fmt.Sprintf("https://example.com/%d", i+1),
			Hot:    "1.0M",
			Source: "微博",
		})
	}
	return items
}

func TestAnalyze_MockMode(t *testing.T) {
	model := &fakeModel{}
	analyzer := NewTrendAnalyzer(analyzerConfig(true, 30), model, testLogger())

	analysis, err := analyzer.Analyze(context.Background(), hotItems(5))
	require.NoError(t, err)

	assert.Contains(t, analysis, "MOCK")
	assert.Zero(t, model.calls)
}

func TestAnalyze_SelectsTopNInScrapeOrder(t *testing.T) {
	model := &fakeModel{result: driver.CompletionResult{Kind: driver.TextResult, Text: "analysis"}}
	analyzer := NewTrendAnalyzer(analyzerConfig(false, 3), model, testLogger())

	analysis, err := analyzer.Analyze(context.Background(), hotItems(10))
	require.NoError(t, err)
	assert.Equal(t, "analysis", analysis)

	assert.Contains(t, model.user, "1. topic 1")
	assert.Contains(t, model.user, "3. topic 3")
	assert.NotContains(t, model.user, "topic 4")

	// Order follows scrape order, no popularity re-sort.
	first := strings.Index(model.user, "topic 1")
	third := strings.Index(model.user, "topic 3")
	assert.Less(t, first, third)
}

func TestAnalyze_FewerItemsThanTopN(t *testing.T) {
	model := &fakeModel{result: driver.CompletionResult{Kind: driver.TextResult, Text: "ok"}}
	analyzer := NewTrendAnalyzer(analyzerConfig(false, 30), model, testLogger())

	_, err := analyzer.Analyze(context.Background(), hotItems(2))
	require.NoError(t, err)

	assert.Contains(t, model.user, "2. topic 2")
}

func TestAnalyze_UnexpectedShapePropagates(t *testing.T) {
	model := &fakeModel{result: driver.CompletionResult{Kind: driver.UnexpectedShape, Detail: "empty"}}
	analyzer := NewTrendAnalyzer(analyzerConfig(false, 30), model, testLogger())

	_, err := analyzer.Analyze(context.Background(), hotItems(3))
	assert.ErrorIs(t, err, domain.ErrUnexpectedShape)
}

func TestRenderItems_OmitsEmptyFields(t *testing.T) {
	rendered := renderItems([]domain.HotItem{
		{Title: "bare topic"},
		{Title: "full topic", Source: "知乎", Hot: "88k"},
	})

	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1. bare topic", lines[0])
	assert.Equal(t, "2. full topic [知乎] (88k)", lines[1])
}

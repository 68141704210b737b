package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
	"github.com/alt-project/newsforge/driver"
)

// fakeModel records the last prompt and plays back a canned result.
type fakeModel struct {
	result driver.CompletionResult
	err    error
	calls  int
	system string
	user   string
}

func (f *fakeModel) Complete(ctx context.Context, system, user string) (driver.CompletionResult, error) {
	f.calls++
	f.system = system
	f.user = user
	return f.result, f.err
}

func generatorConfig(mock bool) *config.Config {
	return &config.Config{
		LLM:      config.LLMConfig{MockMode: mock},
		Pipeline: config.PipelineConfig{PromptLimit: 8000},
	}
}

func TestGenerate_MockModeSkipsModel(t *testing.T) {
	model := &fakeModel{}
	gen := NewContentGenerator(generatorConfig(true), model, testLogger())

	body, err := gen.Generate(context.Background(), "AI News", "excerpt", "https://example.com/a")
	require.NoError(t, err)

	assert.Contains(t, body, "AI News")
	assert.Zero(t, model.calls, "mock mode must not invoke the model")

	again, err := gen.Generate(context.Background(), "AI News", "other excerpt", "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, body, again, "mock output is deterministic")
}

func TestGenerate_LiveModePromptShape(t *testing.T) {
	model := &fakeModel{result: driver.CompletionResult{Kind: driver.TextResult, Text: "rewritten"}}
	gen := NewContentGenerator(generatorConfig(false), model, testLogger())

	body, err := gen.Generate(context.Background(), "AI News", "article excerpt body", "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", body)

	require.Equal(t, 1, model.calls)
	assert.Contains(t, model.system, "editor")
	assert.Contains(t, model.user, "AI News")
	assert.Contains(t, model.user, "https://example.com/a")
	assert.Contains(t, model.user, "article excerpt body")
	for _, section := range []string{"T1", "T2", "T3", "T4", "版本A", "版本B", "建议发布时间"} {
		assert.Contains(t, model.user, section)
	}
}

func TestGenerate_TruncatesExcerptForPrompt(t *testing.T) {
	cfg := generatorConfig(false)
	cfg.Pipeline.PromptLimit = 50

	model := &fakeModel{result: driver.CompletionResult{Kind: driver.TextResult, Text: "ok"}}
	gen := NewContentGenerator(cfg, model, testLogger())

	long := strings.Repeat("x", 200)
	_, err := gen.Generate(context.Background(), "t", long, "https://example.com")
	require.NoError(t, err)

	assert.NotContains(t, model.user, strings.Repeat("x", 51))
	assert.Contains(t, model.user, strings.Repeat("x", 50))
}

func TestGenerate_UnexpectedShapeIsError(t *testing.T) {
	model := &fakeModel{result: driver.CompletionResult{Kind: driver.UnexpectedShape, Detail: "no choices"}}
	gen := NewContentGenerator(generatorConfig(false), model, testLogger())

	_, err := gen.Generate(context.Background(), "t", "e", "https://example.com")
	assert.ErrorIs(t, err, domain.ErrUnexpectedShape)
}

func TestGenerate_ModelErrorPropagates(t *testing.T) {
	model := &fakeModel{err: errors.New("boom")}
	gen := NewContentGenerator(generatorConfig(false), model, testLogger())

	_, err := gen.Generate(context.Background(), "t", "e", "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

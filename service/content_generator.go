package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
	"github.com/alt-project/newsforge/driver"
)

const generatorSystemRole = "You are a senior new-media editor. You rewrite source articles into " +
	"publication-ready Chinese social posts with a strong personal voice, and you always answer in markdown."

// Refined rewrite prompt. The rubric classifies the source into one of four
// templates before producing two scored stylistic versions.
const rewritePromptTemplate = `Rewrite the article below into a styled multi-section post.

STEP 1 — Classify the article into exactly one template:
- T1 breaking news: time-critical event, lead with what changed
- T2 deep-dive explainer: background, mechanism, implications
- T3 opinion piece: a clear stance backed by the reported facts
- T4 practical guide: actionable takeaways the reader can apply

STEP 2 — Produce the output in this structure:
## 选题分类
The chosen template (T1-T4) and one line of reasoning.
## 版本A
A complete rewritten post in the chosen template's voice, then a line "评分: x/10".
## 版本B
An alternate rewrite with a noticeably different hook and tone, then a line "评分: x/10".
## 建议发布时间
The recommended publishing window and why.

ORIGINAL TITLE: %s
SOURCE URL: %s

ARTICLE CONTENT:
---
%s
---`

// ContentGenerator turns a fetched article excerpt into a styled rewrite.
type ContentGenerator struct {
	model       ModelClient
	mockMode    bool
	promptLimit int
	logger      *slog.Logger
}

// NewContentGenerator creates a generator from the loaded configuration.
func NewContentGenerator(cfg *config.Config, model ModelClient, logger *slog.Logger) *ContentGenerator {
	return &ContentGenerator{
		model:       model,
		mockMode:    cfg.LLM.MockMode,
		promptLimit: cfg.Pipeline.PromptLimit,
		logger:      logger,
	}
}

// Generate produces the rewritten post body for one article. Mock mode
// returns a deterministic placeholder without any network call; live mode
// propagates model errors and unexpected response shapes to the caller.
func (g *ContentGenerator) Generate(ctx context.Context, title, excerpt, link string) (string, error) {
	if g.mockMode {
		g.logger.Info("mock mode: skipping model call", "title", title)
		return mockPost(title), nil
	}

	prompt := fmt.Sprintf(rewritePromptTemplate, title, link, truncateRunes(excerpt, g.promptLimit))

	result, err := g.model.Complete(ctx, generatorSystemRole, prompt)
	if err != nil {
		return "", fmt.Errorf("generating post for %q: %w", title, err)
	}

	if result.Kind != driver.TextResult {
		return "", fmt.Errorf("generating post for %q: %w: %s", title, domain.ErrUnexpectedShape, result.Detail)
	}

	return result.Text, nil
}

func mockPost(title string) string {
	return fmt.Sprintf(`## 选题分类
T2 (mock)

## 版本A
[MOCK] Generated rewrite for "%s". This placeholder is produced without calling the model.
评分: 8/10

## 版本B
[MOCK] Alternate take on "%s" with a different hook.
评分: 7/10

## 建议发布时间
工作日早高峰 (mock recommendation)`, title, title)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

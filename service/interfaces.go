package service

import (
	"context"

	"github.com/alt-project/newsforge/driver"
)

// ModelClient is the model-call contract both generators depend on.
// Satisfied by driver.LLMClient; faked in tests.
type ModelClient interface {
	Complete(ctx context.Context, system, user string) (driver.CompletionResult, error)
}

// ExcerptFetcher retrieves a bounded plain-text excerpt for a URL.
// Satisfied by ArticleFetcher; faked in orchestrator tests.
type ExcerptFetcher interface {
	FetchExcerpt(ctx context.Context, url string) string
}

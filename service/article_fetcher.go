package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/utils/html_parser"
)

const fetchFailurePrefix = "[Failed to fetch content from"

// ArticleFetcher retrieves a URL's HTML and reduces it to a bounded
// plain-text excerpt suitable for prompting.
type ArticleFetcher struct {
	userAgent    string
	excerptLimit int
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewArticleFetcher creates an article fetcher from the loaded configuration.
func NewArticleFetcher(cfg *config.Config, logger *slog.Logger) *ArticleFetcher {
	return &ArticleFetcher{
		userAgent:    cfg.HTTP.UserAgent,
		excerptLimit: cfg.Pipeline.ExcerptLimit,
		httpClient:   &http.Client{Timeout: cfg.HTTP.FetchTimeout},
		logger:       logger,
	}
}

// FetchExcerpt never fails: every error path degrades to a sentinel string
// callers detect with IsFetchFailure. On success it returns the readable
// main content, trimmed and truncated to the excerpt limit.
func (f *ArticleFetcher) FetchExcerpt(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Warn("building article request failed", "url", url, "error", err)
		return fetchFailure(url)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn("article fetch failed", "url", url, "error", err)
		return fetchFailure(url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("article fetch returned non-success status", "url", url, "status", resp.StatusCode)
		return fetchFailure(url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Warn("reading article body failed", "url", url, "error", err)
		return fetchFailure(url)
	}

	text := strings.TrimSpace(html_parser.ExtractArticleText(string(body)))
	if text == "" {
		f.logger.Warn("article yielded no readable content", "url", url)
		return fetchFailure(url)
	}

	if runes := []rune(text); len(runes) > f.excerptLimit {
		text = string(runes[:f.excerptLimit])
	}

	f.logger.Info("article fetched", "url", url, "excerpt_length", len(text))

	return text
}

// IsFetchFailure reports whether an excerpt is the fetch-failure sentinel.
func IsFetchFailure(excerpt string) bool {
	return strings.HasPrefix(excerpt, fetchFailurePrefix)
}

func fetchFailure(url string) string {
	return fmt.Sprintf("%s %s]", fetchFailurePrefix, url)
}

// ABOUTME: This file implements the trending-aggregator scraper driver
// ABOUTME: Items are parsed with goquery and kept strictly in DOM order
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
)

// Aggregator list markup. One node per ranked entry; the extra label carries
// "source ‧ popularity".
const (
	hotItemSelector  = ".hot-list .item"
	hotRankSelector  = ".item-rank"
	hotExtraSelector = ".item-extra"
)

// Separators seen in the aggregator's extra label. The page normally uses
// the hyphenation point but some categories fall back to a middle dot.
var extraSeparators = []string{"‧", "·"}

// HotListClient scrapes the trending-topics aggregator page.
type HotListClient struct {
	pageURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHotListClient creates an aggregator scraper from the loaded configuration.
func NewHotListClient(cfg *config.Config, logger *slog.Logger) *HotListClient {
	return &HotListClient{
		pageURL:    cfg.Trends.URL,
		userAgent:  cfg.HTTP.UserAgent,
		httpClient: &http.Client{Timeout: cfg.HTTP.FetchTimeout},
		logger:     logger,
	}
}

// FetchHotList retrieves the aggregator page and parses its ranked entries.
// A non-success HTTP status fails the whole run; per-item gaps (missing rank,
// missing extra label) degrade to empty fields instead.
func (c *HotListClient) FetchHotList(ctx context.Context) ([]domain.HotItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating hot list request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching hot list %s: %w", c.pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s answered %d", domain.ErrHotListStatus, c.pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing hot list page: %w", err)
	}

	base := resp.Request.URL

	var items []domain.HotItem

	doc.Find(hotItemSelector).Each(func(i int, s *goquery.Selection) {
		anchor := s.Find("a").First()

		title := strings.TrimSpace(anchor.Text())
		if title == "" {
			return
		}

		href, _ := anchor.Attr("href")
		source, hot := splitExtra(s.Find(hotExtraSelector).First().Text())

		items = append(items, domain.HotItem{
			Rank:   strings.TrimSpace(s.Find(hotRankSelector).First().Text()),
			Title:  title,
			Link:   resolveLink(base, href),
			Hot:    hot,
			Source: source,
		})
	})

	c.logger.Info("hot list scraped", "url", c.pageURL, "items", len(items))

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoItems, c.pageURL)
	}

	return items, nil
}

// splitExtra splits the combined "source ‧ popularity" label. A label without
// a separator is treated as source-only; popularity stays empty.
func splitExtra(extra string) (source, hot string) {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return "", ""
	}

	for _, sep := range extraSeparators {
		if before, after, found := strings.Cut(extra, sep); found {
			return strings.TrimSpace(before), strings.TrimSpace(after)
		}
	}

	return extra, ""
}

// resolveLink makes relative hrefs absolute against the page origin.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	if base == nil {
		return ref.String()
	}

	return base.ResolveReference(ref).String()
}

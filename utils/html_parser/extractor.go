package html_parser

import (
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// ExtractArticleText converts raw article HTML into plain text paragraphs.
// It removes non-content elements (script/style/navigation/ads) and
// normalizes whitespace so the returned string contains only readable
// sentences, suitable for embedding in a model prompt.
func ExtractArticleText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	// Short-circuit if the payload is already plain text.
	if !strings.Contains(trimmed, "<") {
		return normalizeWhitespace(trimmed)
	}

	// Pre-process HTML: remove non-content elements before go-readability
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err == nil {
		doc.Find("script, style, noscript, aside, nav, header, footer").Remove()
		doc.Find("iframe, embed, object, video, audio, canvas").Remove()
		doc.Find("[class*='social'], [class*='share'], [class*='ad-'], [id*='social'], [id*='share']").Remove()
		doc.Find("[class*='comment'], [id*='comment']").Remove()

		cleanedHTML, _ := doc.Html()
		if cleanedHTML != "" {
			trimmed = cleanedHTML
		}
	}

	// Try go-readability on the cleaned document.
	article, err := readability.FromReader(strings.NewReader(trimmed), nil)
	if err == nil {
		var textBuf strings.Builder
		if err := article.RenderText(&textBuf); err == nil {
			text := strings.TrimSpace(textBuf.String())

			// Readability sometimes extracts only the title or metadata while
			// the actual content is much larger. Fall back when suspiciously
			// short.
			if len(text) >= 200 {
				var htmlBuf strings.Builder
				if err := article.RenderHTML(&htmlBuf); err == nil {
					if html := strings.TrimSpace(htmlBuf.String()); html != "" {
						return extractParagraphs(html)
					}
				}
				return normalizeWhitespace(text)
			}
		}
	}

	// Final fallback: strip tags from the cleaned HTML.
	return extractParagraphs(trimmed)
}

// extractParagraphs extracts text from HTML while preserving paragraph
// structure. Headers, paragraphs, code blocks, and list items are emitted in
// that order, separated by blank lines.
func extractParagraphs(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return StripTags(html)
	}

	var paragraphs []string

	appendText := func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(appendText)
	doc.Find("p").Each(appendText)
	doc.Find("pre code, pre").Each(appendText)
	doc.Find("li").Each(appendText)

	// No structured content: take any block element with meaningful text.
	if len(paragraphs) == 0 {
		doc.Find("div, article, section").Each(func(i int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); len(text) > 10 {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	if len(paragraphs) == 0 {
		return StripTags(html)
	}

	return strings.Join(paragraphs, "\n\n")
}

// StripTags removes HTML tags from a string and returns plain text.
func StripTags(raw string) string {
	p := bluemonday.StrictPolicy()
	return normalizeWhitespace(p.Sanitize(raw))
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package service

import (
	"regexp"
	"strings"

	"github.com/alt-project/newsforge/domain"
)

// Matching is purely lexical: any [title](url) substring qualifies. Nested
// brackets in the title are not supported; the match stops at the first ']'.
var markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)

// ExtractLinks parses raw text into the ordered list of article items it
// references. An item is kept only when both title and link are non-empty
// after trimming and the link starts with an HTTP(S) scheme prefix; anything
// else is silently dropped. Re-running on the same text yields the same list.
func ExtractLinks(text string) []domain.ArticleItem {
	matches := markdownLinkPattern.FindAllStringSubmatch(text, -1)

	items := make([]domain.ArticleItem, 0, len(matches))

	for _, m := range matches {
		title := strings.TrimSpace(m[1])
		link := strings.TrimSpace(m[2])

		if title == "" || link == "" || !strings.HasPrefix(link, "http") {
			continue
		}

		items = append(items, domain.ArticleItem{Title: title, Link: link})
	}

	return items
}

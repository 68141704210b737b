package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alt-project/newsforge/domain"
)

func TestExtractLinks_OrderedMatches(t *testing.T) {
	text := `# Reading list

1. [AI News](https://example.com/a)
Some commentary in between.
2. [Second Story](http://example.com/b) trailing text
inline mention [Third](https://example.com/c?q=1&x=2).
`

	items := ExtractLinks(text)

	require.Len(t, items, 3)
	assert.Equal(t, domain.ArticleItem{Title: "AI News", Link: "https://example.com/a"}, items[0])
	assert.Equal(t, domain.ArticleItem{Title: "Second Story", Link: "http://example.com/b"}, items[1])
	assert.Equal(t, domain.ArticleItem{Title: "Third", Link: "https://example.com/c?q=1&x=2"}, items[2])
}

func TestExtractLinks_DropsMalformedMatches(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty title", "[](https://example.com)"},
		{"whitespace title", "[   ](https://example.com)"},
		{"empty link", "[Title]()"},
		{"non-http scheme", "[FTP mirror](ftp://example.com/file)"},
		{"relative link", "[Docs](/docs/page)"},
		{"bare text", "no links here at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ExtractLinks(tt.text))
		})
	}
}

func TestExtractLinks_NotLimitedToListSyntax(t *testing.T) {
	text := "prose with [a link](https://example.com/x) buried inside"

	items := ExtractLinks(text)

	require.Len(t, items, 1)
	assert.Equal(t, "a link", items[0].Title)
}

func TestExtractLinks_TrimsTitleAndLink(t *testing.T) {
	items := ExtractLinks("[  Padded Title ](  https://example.com/padded )")

	require.Len(t, items, 1)
	assert.Equal(t, "Padded Title", items[0].Title)
	assert.Equal(t, "https://example.com/padded", items[0].Link)
}

func TestExtractLinks_Idempotent(t *testing.T) {
	text := "[One](https://example.com/1) and [Two](https://example.com/2)"

	first := ExtractLinks(text)
	second := ExtractLinks(text)

	assert.Equal(t, first, second)
}

func TestExtractLinks_NestedBracketsStopAtFirstClose(t *testing.T) {
	// The regex stops at the first ']'; the outer bracket never matches.
	items := ExtractLinks("[outer [inner](https://example.com/inner)](https://example.com/outer)")

	require.Len(t, items, 1)
	assert.Equal(t, "inner", items[0].Title)
	assert.Equal(t, "https://example.com/inner", items[0].Link)
}

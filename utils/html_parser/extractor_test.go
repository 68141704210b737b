package html_parser

import (
	"strings"
	"testing"
)

func TestExtractArticleText_PlainText(t *testing.T) {
	input := "This is plain text without any HTML tags."
	result := ExtractArticleText(input)
	if result != input {
		t.Errorf("Expected plain text to be returned as-is, got: %s", result)
	}
}

func TestExtractArticleText_EmptyString(t *testing.T) {
	result := ExtractArticleText("")
	if result != "" {
		t.Errorf("Expected empty string, got: %s", result)
	}
}

func TestExtractArticleText_SimpleHTML(t *testing.T) {
	input := "<html><body><p>This is a paragraph.</p><p>This is another paragraph.</p></body></html>"
	result := ExtractArticleText(input)
	if !strings.Contains(result, "This is a paragraph") {
		t.Errorf("Expected to extract paragraph text, got: %s", result)
	}
	if !strings.Contains(result, "This is another paragraph") {
		t.Errorf("Expected to extract second paragraph text, got: %s", result)
	}
}

func TestExtractArticleText_WithScriptAndStyle(t *testing.T) {
	input := `<html><head><script>alert('test');</script><style>body { color: red; }</style></head><body><p>This is content.</p></body></html>`
	result := ExtractArticleText(input)
	if strings.Contains(result, "alert") {
		t.Errorf("Script content should be removed, got: %s", result)
	}
	if strings.Contains(result, "color: red") {
		t.Errorf("Style content should be removed, got: %s", result)
	}
	if !strings.Contains(result, "This is content") {
		t.Errorf("Expected to extract paragraph text, got: %s", result)
	}
}

func TestExtractArticleText_RemovesNavigationAndFooter(t *testing.T) {
	input := `<html><body><nav>Home | About</nav><article><p>Body of the story.</p></article><footer>Copyright</footer></body></html>`
	result := ExtractArticleText(input)
	if strings.Contains(result, "Home | About") {
		t.Errorf("Navigation should be removed, got: %s", result)
	}
	if strings.Contains(result, "Copyright") {
		t.Errorf("Footer should be removed, got: %s", result)
	}
	if !strings.Contains(result, "Body of the story") {
		t.Errorf("Expected to keep article body, got: %s", result)
	}
}

func TestExtractArticleText_WithHeadersAndLists(t *testing.T) {
	input := "<html><body><h1>Main Title</h1><p>Paragraph text.</p><ul><li>First item</li><li>Second item</li></ul></body></html>"
	result := ExtractArticleText(input)
	for _, want := range []string{"Main Title", "Paragraph text", "First item", "Second item"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in extracted text, got: %s", want, result)
		}
	}
}

func TestExtractArticleText_WhitespaceNormalization(t *testing.T) {
	input := "Some    text\n\n\twith   messy    whitespace"
	result := ExtractArticleText(input)
	if result != "Some text with messy whitespace" {
		t.Errorf("Expected normalized whitespace, got: %q", result)
	}
}

func TestStripTags(t *testing.T) {
	input := "<b>bold</b> and <a href='https://example.com'>link</a>"
	result := StripTags(input)
	if strings.Contains(result, "<") {
		t.Errorf("Expected all tags stripped, got: %s", result)
	}
	if !strings.Contains(result, "bold") || !strings.Contains(result, "link") {
		t.Errorf("Expected text content preserved, got: %s", result)
	}
}

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alt-project/newsforge/domain"
)

func TestPrinter_StatusLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(&buf)
	p.useColors = false

	p.Success("wrote %d posts", 3)
	p.Error("run failed")
	p.Info("plain line")

	out := buf.String()
	assert.Contains(t, out, "✓ wrote 3 posts")
	assert.Contains(t, out, "✗ run failed")
	assert.Contains(t, out, "plain line")
}

func TestPrinter_HotListSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(&buf)
	p.useColors = false

	items := []domain.HotItem{
		{Rank: "1", Title: "first topic", Source: "微博", Hot: "4.2M"},
		{Rank: "2", Title: "second topic", Source: "知乎", Hot: "1M"},
		{Rank: "3", Title: "beyond top n", Source: "x", Hot: "1"},
	}

	p.HotListSummary(items, 2)

	out := buf.String()
	assert.Contains(t, out, "first topic")
	assert.Contains(t, out, "second topic")
	assert.NotContains(t, out, "beyond top n")
}

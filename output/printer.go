// Package output provides CLI output formatting utilities
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/alt-project/newsforge/domain"
)

// Printer handles human-facing output; structured logs go to slog instead.
type Printer struct {
	out       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing to stdout. Colors are disabled when
// NO_COLOR is set or the terminal is dumb.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a printer with a custom writer, for tests.
func NewPrinterWithWriter(w io.Writer) *Printer {
	useColors := true
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		useColors = false
	}
	if os.Getenv("TERM") == "dumb" {
		useColors = false
	}

	return &Printer{out: w, useColors: useColors}
}

// Success prints a green confirmation line.
func (p *Printer) Success(format string, args ...any) {
	p.println(color.FgGreen, "✓ "+fmt.Sprintf(format, args...))
}

// Info prints a plain status line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Error prints a red failure line.
func (p *Printer) Error(format string, args ...any) {
	p.println(color.FgRed, "✗ "+fmt.Sprintf(format, args...))
}

// HotListSummary renders the first topN scraped items as a console table.
func (p *Printer) HotListSummary(items []domain.HotItem, topN int) {
	if len(items) > topN {
		items = items[:topN]
	}

	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Rank, item.Title, item.Source, item.Hot})
	}

	table.Header([]string{"RANK", "TITLE", "SOURCE", "HOT"})
	_ = table.Bulk(rows)
	_ = table.Render()
}

func (p *Printer) println(attr color.Attribute, line string) {
	if p.useColors {
		_, _ = color.New(attr).Fprintln(p.out, line)
		return
	}
	fmt.Fprintln(p.out, line)
}

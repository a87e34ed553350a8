package formatting

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// maxEdgeCell caps how many edges are listed in one table cell before the
// rest is summarised as "+N more".
const maxEdgeCell = 4

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{options: options}
}

// FormatOrder renders position and identifier.
func (f *TableFormatter) FormatOrder(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return []byte(f.formatEmptyMessage("No files found") + "\n"), nil
	}
	t := f.createTable()
	t.AppendHeader(table.Row{f.header("#"), f.header("FILE")})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Index + 1, f.formatID(e)})
	}
	return []byte(t.Render() + "\n"), nil
}

// FormatGraph renders position, identifier and both edge directions.
func (f *TableFormatter) FormatGraph(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return []byte(f.formatEmptyMessage("No files found") + "\n"), nil
	}
	t := f.createTable()
	t.AppendHeader(table.Row{
		f.header("#"),
		f.header("FILE"),
		f.header("DEPENDS ON"),
		f.header("DEPENDENTS"),
	})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.Index + 1,
			f.formatID(e),
			formatEdges(e.DependsOn),
			formatEdges(e.Dependents),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d files", len(entries)), "", ""})
	return []byte(t.Render() + "\n"), nil
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	if f.options.Color {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleLight)
	}
	return t
}

func (f *TableFormatter) header(s string) string {
	if !f.options.Color {
		return s
	}
	return text.FgHiCyan.Sprint(s)
}

// formatID marks files that were referenced but not found on disk.
func (f *TableFormatter) formatID(e Entry) string {
	if e.Discovered {
		return e.ID
	}
	if f.options.Color {
		return text.FgYellow.Sprint(e.ID + " (missing)")
	}
	return e.ID + " (missing)"
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(message string) string {
	if !f.options.Color {
		return message
	}
	return text.FgYellow.Sprint(message)
}

func formatEdges(edges []string) string {
	if len(edges) == 0 {
		return "-"
	}
	if len(edges) <= maxEdgeCell {
		return strings.Join(edges, "\n")
	}
	shown := strings.Join(edges[:maxEdgeCell], "\n")
	return fmt.Sprintf("%s\n+%d more", shown, len(edges)-maxEdgeCell)
}

// Package render writes search results for terminal and pipe consumers.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/theodi/ndlcore"
	"github.com/theodi/ndlcore/internal/jsoncodec"
)

// Format is an output format name.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// DefaultCellWidth caps table cells so descriptions do not wrap the terminal.
const DefaultCellWidth = 48

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, json or csv)", ErrUnknownFormat, s)
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table draws t as a bordered table. Cells wider than cellWidth are truncated;
// cellWidth <= 0 disables truncation.
func Table(w io.Writer, t *ndlcore.Table, cellWidth int) error {
	rows, err := t.StringRows()
	if err != nil {
		return err
	}
	for _, row := range rows {
		for i, cell := range row {
			row[i] = truncate(oneLine(cell), cellWidth)
		}
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	_, err = fmt.Fprintf(w, "%d result(s)\n", t.Len())
	return err
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	b, err := jsoncodec.MarshalIndent(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// CSV writes t with a header row.
func CSV(w io.Writer, t *ndlcore.Table) error {
	return t.WriteCSV(w)
}

// SchemaTable draws the column registry as a two-column table, in registry order.
func SchemaTable(w io.Writer, s ndlcore.Schema) error {
	cols := s.Columns()
	rows := make([][]string, len(cols))
	for i, c := range cols {
		rows[i] = []string{c.Name, c.Description}
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("column", "description").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens text to maxWidth visual cells, ending with an ellipsis.
func truncate(text string, maxWidth int) string {
	if maxWidth <= 0 || lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length]) + "…"
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}

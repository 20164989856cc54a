package ndlcore

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cast"

	"github.com/theodi/ndlcore/internal/jsoncodec"
)

// Table is a row-per-record view of search results.
// Columns are the union of record keys in first-seen order; absent cells are nil.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable builds a table from records. The optional columns fix the leading
// column order; keys not listed there follow in sorted order per record.
func NewTable(records []Record, columns ...string) *Table {
	t := &Table{Columns: []string{}, Rows: make([][]any, 0, len(records))}
	pos := make(map[string]int)
	add := func(k string) {
		if _, ok := pos[k]; !ok {
			pos[k] = len(t.Columns)
			t.Columns = append(t.Columns, k)
		}
	}
	for _, c := range columns {
		add(c)
	}
	for _, r := range records {
		for _, k := range slices.Sorted(maps.Keys(r)) {
			add(k)
		}
	}
	for _, r := range records {
		row := make([]any, len(t.Columns))
		for k, v := range r {
			row[pos[k]] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of one column, or nil if it does not exist.
func (t *Table) Column(name string) []any {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil
	}
	out := make([]any, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// Records converts rows back to records, omitting nil cells.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.Rows))
	for r, row := range t.Rows {
		rec := make(Record, len(t.Columns))
		for i, v := range row {
			if v != nil {
				rec[t.Columns[i]] = v
			}
		}
		out[r] = rec
	}
	return out
}

// Select returns a new table restricted to the given columns, in that order.
// Unknown columns yield nil cells.
func (t *Table) Select(columns ...string) *Table {
	idx := make([]int, len(columns))
	for i, c := range columns {
		idx[i] = t.ColumnIndex(c)
	}
	out := &Table{Columns: append([]string(nil), columns...), Rows: make([][]any, len(t.Rows))}
	for r, row := range t.Rows {
		sel := make([]any, len(columns))
		for i, j := range idx {
			if j >= 0 {
				sel[i] = row[j]
			}
		}
		out.Rows[r] = sel
	}
	return out
}

// StringRows formats every cell for display. Scalars use their natural form,
// arrays and objects are JSON encoded, nil is empty.
func (t *Table) StringRows() ([][]string, error) {
	out := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			s, err := FormatCell(v)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", r, t.Columns[i], err)
			}
			cells[i] = s
		}
		out[r] = cells
	}
	return out, nil
}

// WriteCSV writes the header and all rows as CSV.
func (t *Table) WriteCSV(w io.Writer) error {
	rows, err := t.StringRows()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// FormatCell renders one table value as text.
func FormatCell(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case []any, map[string]any:
		b, err := jsoncodec.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("encode cell: %w", err)
		}
		return string(b), nil
	default:
		s, err := cast.ToStringE(val)
		if err != nil {
			return fmt.Sprint(val), nil //nolint:nilerr // fall back to fmt for exotic types
		}
		return s, nil
	}
}

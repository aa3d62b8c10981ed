package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// Tabular is implemented by results with a natural table layout.
type Tabular interface {
	Table() *Table
}

// TableFormatter formats data as an aligned text table.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders data as a table.
//
// Supported: Tabular, *Table, map[string]string and map[string]any with
// scalar values. Anything else is written as indented JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case Tabular:
		return v.Table().RenderWithOptions(w, f.NoHeaders)
	case *Table:
		return v.RenderWithOptions(w, f.NoHeaders)
	case map[string]string:
		t := &Table{Headers: []string{"KEY", "VALUE"}}
		for _, k := range sortedKeys(v) {
			t.AddRow(k, cell(v[k]))
		}
		return t.RenderWithOptions(w, f.NoHeaders)
	case map[string]any:
		if t, ok := scalarTable(v); ok {
			return t.RenderWithOptions(w, f.NoHeaders)
		}
	}
	return (&JSONFormatter{}).Format(w, data)
}

func scalarTable(m map[string]any) (*Table, bool) {
	t := &Table{Headers: []string{"KEY", "VALUE"}}
	for _, k := range sortedKeys(m) {
		switch v := m[k].(type) {
		case map[string]any, []any:
			return nil, false
		case nil:
			t.AddRow(k, "-")
		default:
			t.AddRow(k, cell(fmt.Sprint(v)))
		}
	}
	return t, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cell renders an empty string as "-".
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// List renders a string list as one comma separated cell.
func List(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// MarshalJSON renders the table as a list of header keyed objects, so
// a Table given to the JSON or YAML formatter stays readable.
func (t *Table) MarshalJSON() ([]byte, error) {
	rows := make([]map[string]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(r) {
				row[strings.ToLower(h)] = r[i]
			}
		}
		rows = append(rows, row)
	}
	return json.Marshal(rows)
}

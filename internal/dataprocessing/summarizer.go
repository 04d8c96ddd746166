package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"
)

// DefaultHeadRows is how many records a summary shows, like a dataframe head()
const DefaultHeadRows = 5

// ColumnSummary describes one column: its observed value kind and null counts
type ColumnSummary struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	NonNull int    `json:"non_null"`
	Null    int    `json:"null"`
}

// Summary is an inspection snapshot of a dataset: shape, per-column kinds
// and null counts, and the first few records rendered as text.
type Summary struct {
	Rows    int             `json:"rows"`
	Columns int             `json:"columns"`
	Fields  []ColumnSummary `json:"fields"`
	Head    [][]string      `json:"head"`
}

// Summarize builds a summary showing at most headRows records
func Summarize(d *Dataset, headRows int) Summary {
	rows, cols := d.Shape()
	summary := Summary{
		Rows:    rows,
		Columns: cols,
		Fields:  make([]ColumnSummary, cols),
	}

	for j, name := range d.columns {
		kinds := make(map[string]bool)
		cs := ColumnSummary{Name: name}
		for _, row := range d.rows {
			if row[j] == nil {
				cs.Null++
				continue
			}
			cs.NonNull++
			kinds[valueKind(row[j])] = true
		}
		switch len(kinds) {
		case 0:
			cs.Kind = "empty"
		case 1:
			for k := range kinds {
				cs.Kind = k
			}
		default:
			cs.Kind = "mixed"
		}
		summary.Fields[j] = cs
	}

	if headRows > rows {
		headRows = rows
	}
	for i := 0; i < headRows; i++ {
		line := make([]string, cols)
		for j, v := range d.rows[i] {
			line[j] = FormatValue(v)
		}
		summary.Head = append(summary.Head, line)
	}

	return summary
}

// NullCounts returns missing-value counts keyed by column name
func (s Summary) NullCounts() map[string]int {
	counts := make(map[string]int, len(s.Fields))
	for _, f := range s.Fields {
		counts[f.Name] = f.Null
	}
	return counts
}

// TotalNulls returns the number of missing cells in the dataset
func (s Summary) TotalNulls() int {
	total := 0
	for _, f := range s.Fields {
		total += f.Null
	}
	return total
}

// LogValue renders the summary as a structured slog group
func (s Summary) LogValue() slog.Value {
	fields := make([]slog.Attr, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, slog.Group(f.Name,
			slog.String("kind", f.Kind),
			slog.Int("non_null", f.NonNull),
			slog.Int("null", f.Null)))
	}
	return slog.GroupValue(
		slog.Int("rows", s.Rows),
		slog.Int("columns", s.Columns),
		slog.Int("null_cells", s.TotalNulls()),
		slog.Attr{Key: "fields", Value: slog.GroupValue(fields...)},
		slog.Any("head", s.Head),
	)
}

func valueKind(v any) string {
	switch v.(type) {
	case int64:
		return KindInt.String()
	case float64:
		return KindFloat.String()
	case time.Time:
		return KindTimestamp.String()
	case string:
		return KindText.String()
	default:
		return "unknown"
	}
}

// FormatValue renders a cell as text. Missing values become the empty string,
// timestamps RFC3339 in UTC, floats the shortest representation that parses back
// to the same value.
func FormatValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(tv, 10)
	case float64:
		if math.IsNaN(tv) {
			return "NaN"
		}
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case string:
		return tv
	case time.Time:
		return tv.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(tv)
	}
}

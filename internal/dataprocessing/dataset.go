package dataprocessing

import (
	"fmt"
	"math"
	"time"

	"noshowcli/internal/errors"
)

// Dataset is an ordered, column-named table held wholly in memory.
// Cell values are nil (missing), int64, float64, string or time.Time.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// NewDataset creates an empty dataset with the given header.
// Empty or repeated column names are rejected as parsing errors.
func NewDataset(columns []string) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if name == "" {
			return nil, errors.NewParsingError(fmt.Sprintf("column %d has an empty name", i), nil)
		}
		if _, dup := index[name]; dup {
			return nil, errors.NewParsingError(fmt.Sprintf("duplicate column name %q", name), nil)
		}
		index[name] = i
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Dataset{
		columns: cols,
		index:   index,
	}, nil
}

// Columns returns a copy of the column names in order
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Shape returns (rows, columns)
func (d *Dataset) Shape() (int, int) {
	return len(d.rows), len(d.columns)
}

// HasColumn reports whether the dataset has a column with the given name
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ColumnIndex returns the position of a column
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// AppendRow adds a record. The number of values must match the header.
func (d *Dataset) AppendRow(values []any) error {
	if len(values) != len(d.columns) {
		return errors.NewParsingError(
			fmt.Sprintf("record has %d fields, header has %d", len(values), len(d.columns)), nil)
	}
	row := make([]any, len(values))
	copy(row, values)
	d.rows = append(d.rows, row)
	return nil
}

// Row returns a copy of the values of record i
func (d *Dataset) Row(i int) []any {
	row := make([]any, len(d.rows[i]))
	copy(row, d.rows[i])
	return row
}

// Record returns record i as a column name to value mapping
func (d *Dataset) Record(i int) map[string]any {
	rec := make(map[string]any, len(d.columns))
	for j, name := range d.columns {
		rec[name] = d.rows[i][j]
	}
	return rec
}

// Value returns the value of a column in record i
func (d *Dataset) Value(i int, column string) (any, bool) {
	j, ok := d.index[column]
	if !ok {
		return nil, false
	}
	return d.rows[i][j], true
}

// Filter keeps the records for which keep returns true, preserving their
// relative order, and returns how many records were removed.
func (d *Dataset) Filter(keep func(row []any) bool) int {
	kept := d.rows[:0]
	for _, row := range d.rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	removed := len(d.rows) - len(kept)
	for i := len(kept); i < len(d.rows); i++ {
		d.rows[i] = nil
	}
	d.rows = kept
	return removed
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	clone := &Dataset{
		columns: d.Columns(),
		index:   make(map[string]int, len(d.index)),
		rows:    make([][]any, len(d.rows)),
	}
	for k, v := range d.index {
		clone.index[k] = v
	}
	for i := range d.rows {
		clone.rows[i] = d.Row(i)
	}
	return clone
}

// Equal reports whether both datasets have the same columns in the same
// order and the same records field-for-field in the same order.
func (d *Dataset) Equal(other *Dataset) bool {
	if other == nil || len(d.columns) != len(other.columns) || len(d.rows) != len(other.rows) {
		return false
	}
	for i, name := range d.columns {
		if other.columns[i] != name {
			return false
		}
	}
	for i := range d.rows {
		if !rowsEqual(d.rows[i], other.rows[i]) {
			return false
		}
	}
	return true
}

func rowsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !valuesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// valuesEqual compares two cell values. Missing values equal each other and
// NaN equals NaN, matching how duplicate rows are detected.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(av) || math.IsNaN(bv) {
			return math.IsNaN(av) && math.IsNaN(bv)
		}
		return av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	default:
		return a == b
	}
}

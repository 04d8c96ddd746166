package dataprocessing

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"noshowcli/internal/errors"
	"noshowcli/pkg/contracts/domain"
)

// Deduplicate removes records that are field-for-field copies of an earlier
// record. First occurrences are kept in their original order. It returns the
// number of records removed.
//
// Timestamp columns compare by instant, so one moment written in two offsets
// or layouts is a duplicate even before NormalizeTimestamps runs. Values that
// do not parse compare as text.
func (d *Dataset) Deduplicate() int {
	tsIdx := d.timestampIndexes()
	buckets := make(map[uint64][][]any, len(d.rows))

	return d.Filter(func(row []any) bool {
		key := dedupeKey(row, tsIdx)
		h := fingerprint(key)
		for _, seen := range buckets[h] {
			if rowsEqual(seen, key) {
				return false
			}
		}
		buckets[h] = append(buckets[h], key)
		return true
	})
}

// timestampIndexes returns the positions of the timestamp columns present
func (d *Dataset) timestampIndexes() []int {
	var idx []int
	for _, name := range domain.TimestampColumns {
		if j, ok := d.index[name]; ok {
			idx = append(idx, j)
		}
	}
	return idx
}

// dedupeKey returns row with its parseable timestamp cells replaced by the
// UTC instant. The row itself is not modified.
func dedupeKey(row []any, tsIdx []int) []any {
	if len(tsIdx) == 0 {
		return row
	}
	key := make([]any, len(row))
	copy(key, row)
	for _, j := range tsIdx {
		if s, ok := key[j].(string); ok {
			if t, err := toTimestamp(s); err == nil {
				key[j] = t
			}
		}
	}
	return key
}

// NormalizeTimestamps converts the given columns into UTC time.Time values.
//
// With TimestampPolicyFail the first unparseable or missing value aborts with a
// PARSING error and the dataset is left untouched. With TimestampPolicyDrop
// records holding such values are removed; the count is returned.
func (d *Dataset) NormalizeTimestamps(columns []string, policy domain.TimestampPolicy) (int, error) {
	idx := make([]int, len(columns))
	for i, name := range columns {
		j, ok := d.index[name]
		if !ok {
			return 0, errors.NewParsingError(fmt.Sprintf("timestamp column %q not found", name), nil)
		}
		idx[i] = j
	}

	parsed := make([][]time.Time, len(d.rows))
	bad := make([]bool, len(d.rows))
	badCount := 0

	for r, row := range d.rows {
		parsed[r] = make([]time.Time, len(idx))
		for i, j := range idx {
			t, err := toTimestamp(row[j])
			if err != nil {
				if policy != domain.TimestampPolicyDrop {
					return 0, errors.NewParsingError("invalid timestamp", err).
						WithContext("row", r).
						WithContext("column", columns[i]).
						WithContext("value", row[j])
				}
				bad[r] = true
				badCount++
				break
			}
			parsed[r][i] = t
		}
	}

	for r, row := range d.rows {
		if bad[r] {
			continue
		}
		for i, j := range idx {
			row[j] = parsed[r][i]
		}
	}

	if badCount == 0 {
		return 0, nil
	}

	r := -1
	return d.Filter(func([]any) bool {
		r++
		return !bad[r]
	}), nil
}

func toTimestamp(v any) (time.Time, error) {
	switch tv := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("missing value")
	case time.Time:
		return tv.UTC(), nil
	case string:
		t, err := cast.ToTimeE(tv)
		if err != nil {
			return time.Time{}, fmt.Errorf("%q is not a recognised date/time", tv)
		}
		return t.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("value of type %T is not a date/time", v)
	}
}

// RenameColumn rewrites a column name keeping values and record order.
// It reports whether a rename happened: when from is absent and to already
// exists the call is a no-op, so cleaning a cleaned dataset changes nothing.
func (d *Dataset) RenameColumn(from, to string) (bool, error) {
	i, hasFrom := d.index[from]
	_, hasTo := d.index[to]

	switch {
	case hasFrom && hasTo:
		return false, errors.NewValidationError(
			fmt.Sprintf("cannot rename %q to %q: both columns exist", from, to))
	case !hasFrom && hasTo:
		return false, nil
	case !hasFrom:
		return false, errors.NewParsingError(fmt.Sprintf("column %q not found", from), nil)
	}

	d.columns[i] = to
	delete(d.index, from)
	d.index[to] = i
	return true, nil
}

// DropNegative removes records whose value in column is below zero and
// returns how many were removed. Missing values are kept.
func (d *Dataset) DropNegative(column string) (int, error) {
	j, ok := d.index[column]
	if !ok {
		return 0, errors.NewParsingError(fmt.Sprintf("column %q not found", column), nil)
	}

	for r, row := range d.rows {
		if row[j] == nil {
			continue
		}
		if _, err := cast.ToFloat64E(row[j]); err != nil {
			return 0, errors.NewParsingError(fmt.Sprintf("column %q holds a non-numeric value", column), err).
				WithContext("row", r).
				WithContext("value", row[j])
		}
	}

	return d.Filter(func(row []any) bool {
		if row[j] == nil {
			return true
		}
		return cast.ToFloat64(row[j]) >= 0
	}), nil
}

package dataprocessing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noshowcli/internal/errors"
)

func TestNewDataset(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		wantErr bool
	}{
		{name: "valid header", columns: []string{"a", "b"}},
		{name: "no columns", columns: []string{}},
		{name: "duplicate name", columns: []string{"a", "a"}, wantErr: true},
		{name: "empty name", columns: []string{"a", ""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDataset(tt.columns)
			if tt.wantErr {
				assert.True(t, errors.IsParsing(err))
				assert.Nil(t, ds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.columns, ds.Columns())
		})
	}
}

func TestDataset_Accessors(t *testing.T) {
	ds := mustDataset(t, []string{"id", "name"},
		[]any{int64(1), "one"},
		[]any{int64(2), nil},
	)

	rows, cols := ds.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 2, ds.Len())
	assert.True(t, ds.HasColumn("name"))
	assert.False(t, ds.HasColumn("missing"))

	idx, ok := ds.ColumnIndex("name")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	assert.Equal(t, map[string]any{"id": int64(2), "name": nil}, ds.Record(1))

	v, ok := ds.Value(0, "name")
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = ds.Value(0, "missing")
	assert.False(t, ok)

	// Row returns a copy
	row := ds.Row(0)
	row[1] = "changed"
	v, _ = ds.Value(0, "name")
	assert.Equal(t, "one", v)

	// Columns returns a copy
	cols2 := ds.Columns()
	cols2[0] = "changed"
	assert.Equal(t, "id", ds.Columns()[0])
}

func TestDataset_AppendRowFieldCount(t *testing.T) {
	ds := mustDataset(t, []string{"a", "b"})

	err := ds.AppendRow([]any{int64(1)})

	assert.True(t, errors.IsParsing(err))
	assert.Equal(t, 0, ds.Len())
}

func TestDataset_Filter(t *testing.T) {
	ds := mustDataset(t, []string{"n"},
		[]any{int64(1)}, []any{int64(2)}, []any{int64(3)}, []any{int64(4)},
	)

	removed := ds.Filter(func(row []any) bool { return row[0].(int64)%2 == 0 })

	assert.Equal(t, 2, removed)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, int64(2), ds.Row(0)[0])
	assert.Equal(t, int64(4), ds.Row(1)[0])
}

func TestDataset_CloneAndEqual(t *testing.T) {
	ts := time.Date(2016, 4, 29, 18, 38, 8, 0, time.UTC)
	ds := mustDataset(t, []string{"id", "when", "score"},
		[]any{int64(1), ts, 1.5},
		[]any{int64(2), nil, math.NaN()},
	)

	clone := ds.Clone()
	assert.True(t, ds.Equal(clone))

	clone.Filter(func(row []any) bool { return row[0].(int64) == 1 })
	assert.False(t, ds.Equal(clone))
	assert.Equal(t, 2, ds.Len(), "clone must not share rows")

	other := mustDataset(t, []string{"id", "when", "score"},
		[]any{int64(1), ts.In(time.FixedZone("BRT", -3*3600)), 1.5},
		[]any{int64(2), nil, math.NaN()},
	)
	assert.True(t, ds.Equal(other), "same instant in another zone is equal")

	renamed := mustDataset(t, []string{"id", "when", "points"},
		[]any{int64(1), ts, 1.5},
		[]any{int64(2), nil, math.NaN()},
	)
	assert.False(t, ds.Equal(renamed))
	assert.False(t, ds.Equal(nil))
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "nil nil", a: nil, b: nil, want: true},
		{name: "nil vs empty string", a: nil, b: "", want: false},
		{name: "int equal", a: int64(3), b: int64(3), want: true},
		{name: "int vs float", a: int64(3), b: 3.0, want: false},
		{name: "int vs string", a: int64(3), b: "3", want: false},
		{name: "NaN equal", a: math.NaN(), b: math.NaN(), want: true},
		{name: "NaN vs number", a: math.NaN(), b: 1.0, want: false},
		{name: "strings", a: "x", b: "x", want: true},
		{name: "times", a: time.Unix(10, 0), b: time.Unix(10, 0).UTC(), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, valuesEqual(tt.a, tt.b))
		})
	}
}

func TestFingerprint(t *testing.T) {
	ts := time.Date(2016, 4, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t,
		fingerprint([]any{int64(1), "a", ts, nil}),
		fingerprint([]any{int64(1), "a", ts.In(time.FixedZone("X", 3600)), nil}))
	assert.Equal(t, fingerprint([]any{0.0}), fingerprint([]any{math.Copysign(0, -1)}))
	assert.Equal(t, fingerprint([]any{math.NaN()}), fingerprint([]any{math.NaN()}))

	assert.NotEqual(t, fingerprint([]any{int64(1)}), fingerprint([]any{"1"}))
	assert.NotEqual(t, fingerprint([]any{"ab", "c"}), fingerprint([]any{"a", "bc"}))
	assert.NotEqual(t, fingerprint([]any{nil}), fingerprint([]any{""}))
}

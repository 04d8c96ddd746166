package dataprocessing

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	ts := time.Date(2016, 4, 29, 18, 38, 8, 0, time.UTC)
	ds := mustDataset(t, []string{"id", "when", "label", "mixed", "blank"},
		[]any{int64(1), ts, "a", int64(1), nil},
		[]any{int64(2), nil, "b", "x", nil},
		[]any{int64(3), ts, nil, 2.5, nil},
	)

	s := Summarize(ds, 2)

	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 5, s.Columns)
	require.Len(t, s.Fields, 5)
	assert.Equal(t, ColumnSummary{Name: "id", Kind: "int", NonNull: 3, Null: 0}, s.Fields[0])
	assert.Equal(t, ColumnSummary{Name: "when", Kind: "timestamp", NonNull: 2, Null: 1}, s.Fields[1])
	assert.Equal(t, ColumnSummary{Name: "label", Kind: "text", NonNull: 2, Null: 1}, s.Fields[2])
	assert.Equal(t, "mixed", s.Fields[3].Kind)
	assert.Equal(t, ColumnSummary{Name: "blank", Kind: "empty", NonNull: 0, Null: 3}, s.Fields[4])

	assert.Equal(t, map[string]int{"id": 0, "when": 1, "label": 1, "mixed": 0, "blank": 3}, s.NullCounts())
	assert.Equal(t, 5, s.TotalNulls())

	assert.Equal(t, [][]string{
		{"1", "2016-04-29T18:38:08Z", "a", "1", ""},
		{"2", "", "b", "x", ""},
	}, s.Head)
}

func TestSummarize_HeadLargerThanDataset(t *testing.T) {
	ds := mustDataset(t, []string{"id"}, []any{int64(1)})

	s := Summarize(ds, DefaultHeadRows)

	assert.Len(t, s.Head, 1)
}

func TestSummarize_Empty(t *testing.T) {
	ds := mustDataset(t, []string{"id", "Age"})

	s := Summarize(ds, DefaultHeadRows)

	assert.Equal(t, 0, s.Rows)
	assert.Equal(t, 2, s.Columns)
	assert.Empty(t, s.Head)
	assert.Equal(t, 0, s.TotalNulls())
}

func TestSummary_LogValue(t *testing.T) {
	ds := mustDataset(t, []string{"id", "Age"},
		[]any{int64(1), int64(34)},
		[]any{int64(2), nil},
	)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logger.Info("summary", slog.Any("dataset", Summarize(ds, 1)))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	dataset, ok := entry["dataset"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2.0, dataset["rows"])
	assert.Equal(t, 2.0, dataset["columns"])
	assert.Equal(t, 1.0, dataset["null_cells"])

	fields := dataset["fields"].(map[string]any)
	age := fields["Age"].(map[string]any)
	assert.Equal(t, "int", age["kind"])
	assert.Equal(t, 1.0, age["null"])
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "int", in: int64(-5), want: "-5"},
		{name: "whole float", in: 29872499824296.0, want: "29872499824296"},
		{name: "fraction", in: 0.25, want: "0.25"},
		{name: "NaN", in: math.NaN(), want: "NaN"},
		{name: "text", in: "JARDIM DA PENHA", want: "JARDIM DA PENHA"},
		{
			name: "timestamp converted to UTC",
			in:   time.Date(2016, 4, 29, 15, 38, 8, 0, time.FixedZone("BRT", -3*3600)),
			want: "2016-04-29T18:38:08Z",
		},
		{name: "other", in: true, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noshowcli/internal/errors"
	"noshowcli/pkg/contracts/domain"
)

func TestDataset_Deduplicate(t *testing.T) {
	tests := []struct {
		name        string
		rows        [][]any
		wantRemoved int
		wantIDs     []int64
	}{
		{
			name:        "no duplicates",
			rows:        [][]any{{int64(1), int64(34)}, {int64(2), int64(10)}},
			wantRemoved: 0,
			wantIDs:     []int64{1, 2},
		},
		{
			name:        "adjacent duplicate",
			rows:        [][]any{{int64(1), int64(34)}, {int64(1), int64(34)}, {int64(2), int64(-5)}},
			wantRemoved: 1,
			wantIDs:     []int64{1, 2},
		},
		{
			name: "first occurrence and order kept",
			rows: [][]any{
				{int64(3), int64(1)}, {int64(1), int64(1)}, {int64(3), int64(1)},
				{int64(2), int64(1)}, {int64(1), int64(1)}, {int64(3), int64(1)},
			},
			wantRemoved: 3,
			wantIDs:     []int64{3, 1, 2},
		},
		{
			name:        "partial match is not a duplicate",
			rows:        [][]any{{int64(1), int64(34)}, {int64(1), int64(35)}},
			wantRemoved: 0,
			wantIDs:     []int64{1, 1},
		},
		{
			name:        "missing values compare equal",
			rows:        [][]any{{int64(1), nil}, {int64(1), nil}},
			wantRemoved: 1,
			wantIDs:     []int64{1},
		},
		{
			name:        "empty dataset",
			rows:        nil,
			wantRemoved: 0,
			wantIDs:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := mustDataset(t, []string{"id", "age"}, tt.rows...)

			removed := ds.Deduplicate()

			assert.Equal(t, tt.wantRemoved, removed)
			var ids []int64
			for i := 0; i < ds.Len(); i++ {
				ids = append(ids, ds.Row(i)[0].(int64))
			}
			assert.Equal(t, tt.wantIDs, ids)

			// second pass is a no-op
			assert.Equal(t, 0, ds.Deduplicate())
		})
	}
}

func TestDataset_DeduplicateTimestampInstants(t *testing.T) {
	columns := []string{"id", "ScheduledDay", "AppointmentDay"}
	instant := time.Date(2016, 4, 29, 18, 38, 8, 0, time.UTC)

	tests := []struct {
		name        string
		rows        [][]any
		wantRemoved int
	}{
		{
			name: "same instant in another offset",
			rows: [][]any{
				{int64(1), "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z"},
				{int64(1), "2016-04-29T20:38:08+02:00", "2016-04-29T00:00:00Z"},
			},
			wantRemoved: 1,
		},
		{
			name: "date only and midnight",
			rows: [][]any{
				{int64(1), "2016-04-29T18:38:08Z", "2016-04-29"},
				{int64(1), "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z"},
			},
			wantRemoved: 1,
		},
		{
			name: "text and parsed value",
			rows: [][]any{
				{int64(1), instant, "2016-04-29T00:00:00Z"},
				{int64(1), "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z"},
			},
			wantRemoved: 1,
		},
		{
			name: "different instants",
			rows: [][]any{
				{int64(1), "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z"},
				{int64(1), "2016-04-29T18:38:08+02:00", "2016-04-29T00:00:00Z"},
			},
			wantRemoved: 0,
		},
		{
			name: "identical malformed text",
			rows: [][]any{
				{int64(1), "someday", "2016-04-29T00:00:00Z"},
				{int64(1), "someday", "2016-04-29T00:00:00Z"},
			},
			wantRemoved: 1,
		},
		{
			name: "different malformed text",
			rows: [][]any{
				{int64(1), "someday", "2016-04-29T00:00:00Z"},
				{int64(1), "some day", "2016-04-29T00:00:00Z"},
			},
			wantRemoved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := mustDataset(t, columns, tt.rows...)
			first := ds.Row(0)[1]

			removed := ds.Deduplicate()

			assert.Equal(t, tt.wantRemoved, removed)
			assert.Equal(t, first, ds.Row(0)[1], "survivor keeps its original value")
		})
	}
}

func TestDataset_DeduplicateAfterNormalize(t *testing.T) {
	ds := mustDataset(t, []string{"id", "ScheduledDay", "AppointmentDay"},
		[]any{int64(1), "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z"},
		[]any{int64(1), "2016-04-29T15:38:08-03:00", "2016-04-29"},
		[]any{int64(2), "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z"},
	)

	require.Equal(t, 1, ds.Deduplicate())
	_, err := ds.NormalizeTimestamps(domain.TimestampColumns, domain.TimestampPolicyFail)
	require.NoError(t, err)

	assert.Equal(t, 0, ds.Deduplicate(), "normalized output has no duplicates left")
	assert.Equal(t, 2, ds.Len())
}

func TestDataset_NormalizeTimestamps(t *testing.T) {
	columns := []string{"id", "ScheduledDay", "AppointmentDay"}
	want := time.Date(2016, 4, 29, 18, 38, 8, 0, time.UTC)

	t.Run("parses RFC3339 and date-only values", func(t *testing.T) {
		ds := mustDataset(t, columns,
			[]any{int64(1), "2016-04-29T18:38:08Z", "2016-04-29"},
		)

		removed, err := ds.NormalizeTimestamps(domain.TimestampColumns, domain.TimestampPolicyFail)

		require.NoError(t, err)
		assert.Equal(t, 0, removed)
		scheduled, _ := ds.Value(0, "ScheduledDay")
		appointment, _ := ds.Value(0, "AppointmentDay")
		assert.Equal(t, want, scheduled)
		assert.Equal(t, time.Date(2016, 4, 29, 0, 0, 0, 0, time.UTC), appointment)
	})

	t.Run("leaves existing timestamps and converts to UTC", func(t *testing.T) {
		zoned := want.In(time.FixedZone("BRT", -3*3600))
		ds := mustDataset(t, columns, []any{int64(1), zoned, want})

		_, err := ds.NormalizeTimestamps(domain.TimestampColumns, domain.TimestampPolicyFail)

		require.NoError(t, err)
		scheduled, _ := ds.Value(0, "ScheduledDay")
		assert.Equal(t, time.UTC, scheduled.(time.Time).Location())
		assert.True(t, want.Equal(scheduled.(time.Time)))
	})

	t.Run("fail policy aborts without changes", func(t *testing.T) {
		ds := mustDataset(t, columns,
			[]any{int64(1), "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z"},
			[]any{int64(2), "not a date", "2016-04-29T00:00:00Z"},
		)
		before := ds.Clone()

		_, err := ds.NormalizeTimestamps(domain.TimestampColumns, domain.TimestampPolicyFail)

		require.Error(t, err)
		assert.True(t, errors.IsParsing(err))
		assert.True(t, before.Equal(ds), "dataset must be untouched on failure")
	})

	t.Run("missing value is malformed", func(t *testing.T) {
		ds := mustDataset(t, columns, []any{int64(1), nil, "2016-04-29T00:00:00Z"})

		_, err := ds.NormalizeTimestamps(domain.TimestampColumns, domain.TimestampPolicyFail)

		assert.True(t, errors.IsParsing(err))
	})

	t.Run("drop policy removes bad records", func(t *testing.T) {
		ds := mustDataset(t, columns,
			[]any{int64(1), "2016-04-29T18:38:08Z", "2016-04-29T00:00:00Z"},
			[]any{int64(2), "garbage", "2016-04-29T00:00:00Z"},
			[]any{int64(3), "2016-04-29T18:38:08Z", nil},
			[]any{int64(4), "2016-04-30T08:00:00Z", "2016-05-02T00:00:00Z"},
		)

		removed, err := ds.NormalizeTimestamps(domain.TimestampColumns, domain.TimestampPolicyDrop)

		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		require.Equal(t, 2, ds.Len())
		assert.Equal(t, int64(1), ds.Row(0)[0])
		assert.Equal(t, int64(4), ds.Row(1)[0])
		for i := 0; i < ds.Len(); i++ {
			for _, c := range domain.TimestampColumns {
				v, _ := ds.Value(i, c)
				assert.IsType(t, time.Time{}, v)
			}
		}
	})

	t.Run("missing column", func(t *testing.T) {
		ds := mustDataset(t, []string{"id"}, []any{int64(1)})

		_, err := ds.NormalizeTimestamps(domain.TimestampColumns, domain.TimestampPolicyFail)

		assert.True(t, errors.IsParsing(err))
	})
}

func TestDataset_RenameColumn(t *testing.T) {
	t.Run("renames and keeps values", func(t *testing.T) {
		ds := mustDataset(t, []string{"id", "No-show"},
			[]any{int64(1), "No"}, []any{int64(2), "Yes"})

		renamed, err := ds.RenameColumn(domain.ColumnNoShowSource, domain.ColumnNoShow)

		require.NoError(t, err)
		assert.True(t, renamed)
		assert.Equal(t, []string{"id", "No_show"}, ds.Columns())
		assert.False(t, ds.HasColumn("No-show"))
		v, _ := ds.Value(1, "No_show")
		assert.Equal(t, "Yes", v)
	})

	t.Run("already renamed is a no-op", func(t *testing.T) {
		ds := mustDataset(t, []string{"id", "No_show"}, []any{int64(1), "No"})

		renamed, err := ds.RenameColumn(domain.ColumnNoShowSource, domain.ColumnNoShow)

		require.NoError(t, err)
		assert.False(t, renamed)
		assert.Equal(t, []string{"id", "No_show"}, ds.Columns())
	})

	t.Run("both columns present", func(t *testing.T) {
		ds := mustDataset(t, []string{"No-show", "No_show"})

		_, err := ds.RenameColumn(domain.ColumnNoShowSource, domain.ColumnNoShow)

		assert.Equal(t, errors.ErrTypeValidation, errors.TypeOf(err))
	})

	t.Run("neither column present", func(t *testing.T) {
		ds := mustDataset(t, []string{"id"})

		_, err := ds.RenameColumn(domain.ColumnNoShowSource, domain.ColumnNoShow)

		assert.True(t, errors.IsParsing(err))
	})
}

func TestDataset_DropNegative(t *testing.T) {
	t.Run("removes negative ages", func(t *testing.T) {
		ds := mustDataset(t, []string{"id", "Age"},
			[]any{int64(1), int64(34)},
			[]any{int64(2), int64(-5)},
			[]any{int64(3), int64(0)},
			[]any{int64(4), int64(-1)},
			[]any{int64(5), nil},
		)

		removed, err := ds.DropNegative("Age")

		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		require.Equal(t, 3, ds.Len())
		assert.Equal(t, int64(1), ds.Row(0)[0])
		assert.Equal(t, int64(3), ds.Row(1)[0])
		assert.Equal(t, int64(5), ds.Row(2)[0])
	})

	t.Run("float values", func(t *testing.T) {
		ds := mustDataset(t, []string{"Age"}, []any{-0.5}, []any{1.5})

		removed, err := ds.DropNegative("Age")

		require.NoError(t, err)
		assert.Equal(t, 1, removed)
	})

	t.Run("non numeric value", func(t *testing.T) {
		ds := mustDataset(t, []string{"Age"}, []any{"old"})

		_, err := ds.DropNegative("Age")

		assert.True(t, errors.IsParsing(err))
		assert.Equal(t, 1, ds.Len())
	})

	t.Run("missing column", func(t *testing.T) {
		ds := mustDataset(t, []string{"id"})

		_, err := ds.DropNegative("Age")

		assert.True(t, errors.IsParsing(err))
	})
}

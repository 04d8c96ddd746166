package operations

import (
	"log/slog"
	"time"

	"noshowcli/internal/dataprocessing"
)

// Cleaning step identifiers
const (
	StepIDLoad                = "load"
	StepIDDeduplicate         = "deduplicate"
	StepIDNormalizeTimestamps = "normalize_timestamps"
	StepIDRenameColumns       = "rename_columns"
	StepIDValidateAge         = "validate_age"
)

// Cleaning step names
const (
	StepNameLoad                = "Load Source"
	StepNameDeduplicate         = "Remove Duplicates"
	StepNameNormalizeTimestamps = "Normalize Timestamps"
	StepNameRenameColumns       = "Rename Columns"
	StepNameValidateAge         = "Validate Age"
)

// StepReport describes what one step did to the dataset
type StepReport struct {
	StepID     string         `json:"step_id"`
	StepName   string         `json:"step_name"`
	RowsBefore int            `json:"rows_before"`
	RowsAfter  int            `json:"rows_after"`
	Removed    int            `json:"removed"`
	Columns    int            `json:"columns"`
	NullCounts map[string]int `json:"null_counts"`
	Duration   time.Duration  `json:"duration"`
	Message    string         `json:"message,omitempty"`
}

// LogValue renders the report as a structured slog group
func (r StepReport) LogValue() slog.Value {
	nulls := make([]slog.Attr, 0, len(r.NullCounts))
	for name, n := range r.NullCounts {
		if n > 0 {
			nulls = append(nulls, slog.Int(name, n))
		}
	}
	return slog.GroupValue(
		slog.String("step", r.StepID),
		slog.Int("rows_before", r.RowsBefore),
		slog.Int("rows_after", r.RowsAfter),
		slog.Int("removed", r.Removed),
		slog.Int("columns", r.Columns),
		slog.Attr{Key: "null_counts", Value: slog.GroupValue(nulls...)},
		slog.Duration("duration", r.Duration),
		slog.String("message", r.Message),
	)
}

// Result is the outcome of a successful run
type Result struct {
	RunID    string                  `json:"run_id"`
	Source   string                  `json:"source"`
	Dataset  *dataprocessing.Dataset `json:"-"`
	Reports  []StepReport            `json:"reports"`
	Initial  dataprocessing.Summary  `json:"initial"`
	Final    dataprocessing.Summary  `json:"final"`
	Duration time.Duration           `json:"duration"`
}

// Report returns the report of a step by ID
func (r *Result) Report(stepID string) (StepReport, bool) {
	for _, rep := range r.Reports {
		if rep.StepID == stepID {
			return rep, true
		}
	}
	return StepReport{}, false
}

// RemovedTotal returns the number of records dropped by cleaning
func (r *Result) RemovedTotal() int {
	total := 0
	for _, rep := range r.Reports {
		total += rep.Removed
	}
	return total
}

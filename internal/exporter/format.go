package exporter

import (
	"path/filepath"
	"strings"

	"noshowcli/internal/dataprocessing"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the format from a file extension; anything that is
// not a workbook is written as CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// formatRecord renders a dataset row as CSV fields
func formatRecord(row []any) []string {
	record := make([]string, len(row))
	for i, v := range row {
		record[i] = dataprocessing.FormatValue(v)
	}
	return record
}

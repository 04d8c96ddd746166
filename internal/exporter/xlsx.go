package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"noshowcli/internal/config"
	"noshowcli/internal/dataprocessing"
	"noshowcli/internal/errors"
)

// XLSXWriter writes datasets to a single-sheet workbook
type XLSXWriter struct {
	paths     *config.Paths
	logger    *slog.Logger
	sheetName string
}

// NewXLSXWriter creates a workbook writer using the given sheet name
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger, sheetName string) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if sheetName == "" {
		sheetName = config.DefaultCleanedSheet
	}
	return &XLSXWriter{paths: paths, logger: logger, sheetName: sheetName}
}

// WriteDataset writes the header and every record to the workbook sheet.
// Numbers stay numeric cells; timestamps are written as RFC3339 text so the
// file loads back to the same values.
func (w *XLSXWriter) WriteDataset(ctx context.Context, filePath string, ds *dataprocessing.Dataset) error {
	fullPath := filePath
	if w.paths != nil {
		fullPath = w.paths.Resolve(filePath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.NewStorageError("failed to create directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), w.sheetName); err != nil {
		return errors.NewStorageError("failed to name sheet", err)
	}

	sw, err := f.NewStreamWriter(w.sheetName)
	if err != nil {
		return errors.NewStorageError("failed to create sheet writer", err)
	}

	columns := ds.Columns()
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.NewStorageError("failed to write header row", err)
	}

	for i := 0; i < ds.Len(); i++ {
		if i%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewStorageError("row out of sheet range", err).WithContext("row", i)
		}
		if err := sw.SetRow(cell, workbookRow(ds.Row(i))); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.NewStorageError("failed to flush sheet", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return errors.NewStorageError("failed to save workbook", err)
	}

	rows, cols := ds.Shape()
	w.logger.InfoContext(ctx, "Exported dataset to workbook",
		slog.String("path", fullPath),
		slog.String("sheet_name", w.sheetName),
		slog.Int("rows", rows),
		slog.Int("columns", cols))
	return nil
}

func workbookRow(row []any) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		if t, ok := v.(time.Time); ok {
			cells[i] = dataprocessing.FormatValue(t)
			continue
		}
		cells[i] = v
	}
	return cells
}

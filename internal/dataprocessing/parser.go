package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"noshowcli/internal/errors"
	"noshowcli/internal/validation"
)

const utf8BOM = "\uFEFF"

// Parser loads a source file into a Dataset according to a schema
type Parser struct {
	schema    Schema
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewParser creates a parser for the given schema
func NewParser(schema Schema, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "parser"))
	return &Parser{
		schema:    schema,
		logger:    logger,
		validator: validation.NewFileValidator(logger),
	}
}

// ParseFile loads an appointment dataset with the default schema.
func ParseFile(filePath string) (*Dataset, error) {
	return NewParser(AppointmentSchema(), nil).ParseFile(context.Background(), filePath)
}

// ParseFile reads a .xlsx workbook or a delimited text file.
// It returns a NOT_FOUND error when the path does not resolve to a readable
// file and a PARSING error when the content is not a table matching the schema.
func (p *Parser) ParseFile(ctx context.Context, filePath string) (*Dataset, error) {
	if err := p.validator.ValidateFile(filePath); err != nil {
		return nil, err
	}

	if validation.IsExcelFile(filePath) {
		return p.parseWorkbook(ctx, filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrTypeNotFound, "failed to open source file", err)
	}
	defer f.Close()

	ds, err := p.Parse(ctx, f)
	if err != nil {
		return nil, err
	}

	rows, cols := ds.Shape()
	p.logger.InfoContext(ctx, "Loaded source file",
		slog.String("path", filePath),
		slog.Int("rows", rows),
		slog.Int("columns", cols))
	return ds, nil
}

// Parse reads comma-separated records with a header row
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError("source is empty, no header row", nil)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read header row", err)
	}

	ds, columns, err := p.newDataset(header)
	if err != nil {
		return nil, err
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.NewParsingError("malformed delimited record", err).WithContext("line", line)
		}
		if err := p.appendRecord(ds, columns, record, line); err != nil {
			return nil, err
		}
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	return ds, nil
}

// parseWorkbook reads the first sheet of a workbook; its first row is the header
func (p *Parser) parseWorkbook(ctx context.Context, filePath string) (*Dataset, error) {
	if err := p.validator.ValidateExcelFile(filePath); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil)
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheetName), err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("sheet %q is empty, no header row", sheetName), nil)
	}

	p.logger.DebugContext(ctx, "Reading workbook sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	ds, columns, err := p.newDataset(rows[0])
	if err != nil {
		return nil, err
	}

	for i, row := range rows[1:] {
		line := i + 2
		if isBlankRow(row) {
			continue
		}
		// GetRows drops trailing empty cells
		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			row = padded
		}
		for j, col := range columns {
			if col.Kind == KindTimestamp {
				row[j] = excelSerialToTimestamp(row[j])
			}
		}
		if err := p.appendRecord(ds, columns, row, line); err != nil {
			return nil, err
		}
	}

	nrows, ncols := ds.Shape()
	p.logger.InfoContext(ctx, "Loaded source workbook",
		slog.String("path", filePath),
		slog.String("sheet_name", sheetName),
		slog.Int("rows", nrows),
		slog.Int("columns", ncols))
	return ds, nil
}

func (p *Parser) newDataset(header []string) (*Dataset, []Column, error) {
	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		names[i] = strings.TrimSpace(h)
	}

	ds, err := NewDataset(names)
	if err != nil {
		return nil, nil, err
	}

	columns, err := p.schema.resolve(names)
	if err != nil {
		return nil, nil, err
	}
	return ds, columns, nil
}

func (p *Parser) appendRecord(ds *Dataset, columns []Column, record []string, line int) error {
	if len(record) != len(columns) {
		return errors.NewParsingError(
			fmt.Sprintf("record has %d fields, header has %d", len(record), len(columns)), nil).
			WithContext("line", line)
	}

	values := make([]any, len(columns))
	for i, col := range columns {
		v, err := col.coerce(record[i])
		if err != nil {
			return errors.NewParsingError("invalid field value", err).
				WithContext("line", line).
				WithContext("column", col.Name)
		}
		values[i] = v
	}
	return ds.AppendRow(values)
}

// excelSerialToTimestamp turns a raw Excel date serial into RFC3339 text.
// Text cells are returned unchanged for NormalizeTimestamps to handle.
func excelSerialToTimestamp(raw string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

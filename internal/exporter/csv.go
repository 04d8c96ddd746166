package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"noshowcli/internal/config"
	"noshowcli/internal/dataprocessing"
	"noshowcli/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance. Relative paths are
// resolved against paths; a nil paths leaves them relative to the process.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.NewStorageError("failed to create directory", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return errors.NewStorageError("failed to open file", err)
	}
	defer file.Close()

	if options.BOMPrefix && !options.Append {
		if _, err := file.Write(utf8BOM); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewStorageError("failed to write headers", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV", err)
	}
	return nil
}

// WriteDataset streams a dataset to a CSV file, header row first.
// Missing values are written as empty fields and timestamps as RFC3339.
func (w *CSVWriter) WriteDataset(ctx context.Context, filePath string, ds *dataprocessing.Dataset, bom bool) error {
	stream, err := w.CreateStreamWriter(filePath, ds.Columns(), bom)
	if err != nil {
		return err
	}

	for i := 0; i < ds.Len(); i++ {
		if i%10000 == 0 {
			if err := ctx.Err(); err != nil {
				stream.Close()
				return err
			}
		}
		if err := stream.WriteRecord(formatRecord(ds.Row(i))); err != nil {
			stream.Close()
			return errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	if err := stream.Close(); err != nil {
		return errors.NewStorageError("failed to close CSV file", err)
	}

	rows, cols := ds.Shape()
	w.logger.InfoContext(ctx, "Exported dataset to CSV",
		slog.String("path", stream.path),
		slog.Int("rows", rows),
		slog.Int("columns", cols))
	return nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string, bom bool) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Creating CSV stream writer",
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, errors.NewStorageError("failed to create directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, errors.NewStorageError("failed to create file", err)
	}

	if bom {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			return nil, errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, errors.NewStorageError("failed to write headers", err)
		}
	}

	return &StreamWriter{
		path:   fullPath,
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

func (w *CSVWriter) resolvePath(filePath string) string {
	if w.paths == nil {
		return filePath
	}
	return w.paths.Resolve(filePath)
}

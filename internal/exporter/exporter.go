package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"noshowcli/internal/config"
	"noshowcli/internal/dataprocessing"
	"noshowcli/internal/errors"
	"noshowcli/internal/validation"
)

// Target is one output file of an export
type Target struct {
	Path   string
	Format Format // derived from Path when empty
	BOM    bool   // CSV only
}

// Exporter writes a cleaned dataset to one or more files
type Exporter struct {
	csv       *CSVWriter
	xlsx      *XLSXWriter
	validator *validation.FileValidator
	logger    *slog.Logger
}

// NewExporter creates an exporter resolving relative paths against paths
func NewExporter(paths *config.Paths, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "exporter"))
	return &Exporter{
		csv:       NewCSVWriter(paths, logger),
		xlsx:      NewXLSXWriter(paths, logger, config.DefaultCleanedSheet),
		validator: validation.NewFileValidator(logger),
		logger:    logger,
	}
}

// Export writes ds to every target concurrently. The first failure cancels
// the remaining writes and is returned as a STORAGE error.
func (e *Exporter) Export(ctx context.Context, ds *dataprocessing.Dataset, targets []Target) error {
	if ds == nil {
		return errors.NewValidationError("nothing to export")
	}

	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if t.Path == "" {
			return errors.NewValidationError("export target has no path")
		}
		if seen[t.Path] {
			return errors.NewValidationError(fmt.Sprintf("export target %s listed twice", t.Path))
		}
		seen[t.Path] = true
	}

	// every destination must be writable before any file is touched
	for _, t := range targets {
		if err := e.validator.ValidateOutputDirectory(filepath.Dir(e.csv.resolvePath(t.Path))); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		t := t
		g.Go(func() error {
			return e.write(gctx, ds, t)
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.ErrorContext(ctx, "Export failed", slog.String("error", err.Error()))
		if errors.TypeOf(err) == "" {
			return errors.NewStorageError("export interrupted", err)
		}
		return err
	}

	e.logger.InfoContext(ctx, "Export complete", slog.Int("targets", len(targets)))
	return nil
}

func (e *Exporter) write(ctx context.Context, ds *dataprocessing.Dataset, t Target) error {
	format := t.Format
	if format == "" {
		format = FormatFromPath(t.Path)
	}

	switch format {
	case FormatCSV:
		return e.csv.WriteDataset(ctx, t.Path, ds, t.BOM)
	case FormatXLSX:
		return e.xlsx.WriteDataset(ctx, t.Path, ds)
	default:
		return errors.NewValidationError(fmt.Sprintf("unsupported export format %q", format))
	}
}

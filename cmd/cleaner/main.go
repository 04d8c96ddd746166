package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noshowcli/internal/config"
	"noshowcli/internal/dataprocessing"
	"noshowcli/internal/exporter"
	"noshowcli/internal/infrastructure"
	"noshowcli/internal/operations"
	"noshowcli/pkg/contracts/domain"
)

// cliOptions holds the command line flags. Flags that were not given leave
// the loaded configuration untouched.
type cliOptions struct {
	configFile string
	set        map[string]bool

	in       string
	out      string
	save     bool
	xlsx     string
	policy   string
	bom      bool
	strict   bool
	headRows int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()

	if err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (*cliOptions, error) {
	opts := &cliOptions{set: make(map[string]bool)}

	fs := flag.NewFlagSet("cleaner", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configFile, "config", "", "config file (defaults to config.yaml or configs/config.yaml when present)")
	fs.StringVar(&opts.in, "in", config.DefaultInputFile, "source appointment file (.csv or .xlsx)")
	fs.StringVar(&opts.out, "out", "", "write the cleaned dataset as CSV to this path")
	fs.BoolVar(&opts.save, "save", false, "write the cleaned CSV to "+config.DefaultCleanedCSV+" unless -out is given")
	fs.StringVar(&opts.xlsx, "xlsx", "", "write the cleaned dataset as an Excel workbook to this path")
	fs.StringVar(&opts.policy, "on-bad-timestamp", config.DefaultTimestampPolicy, "fail | drop")
	fs.BoolVar(&opts.bom, "bom", false, "prefix the CSV output with a UTF-8 byte order mark")
	fs.BoolVar(&opts.strict, "strict", false, "check every cleaned record against the appointment contract")
	fs.IntVar(&opts.headRows, "head", config.DefaultHeadRows, "rows shown in the dataset inspections")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// apply overlays the flags given on the command line onto cfg
func (o *cliOptions) apply(cfg *config.Config) {
	if o.set["in"] {
		cfg.Cleaning.Input = o.in
	}
	if o.set["out"] {
		cfg.Cleaning.OutputCSV = o.out
	} else if o.save && cfg.Cleaning.OutputCSV == "" {
		cfg.Cleaning.OutputCSV = config.DefaultCleanedCSV
	}
	if o.set["xlsx"] {
		cfg.Cleaning.OutputXLSX = o.xlsx
	}
	if o.set["on-bad-timestamp"] {
		cfg.Cleaning.TimestampPolicy = o.policy
	}
	if o.set["bom"] {
		cfg.Cleaning.WriteBOM = o.bom
	}
	if o.set["strict"] {
		cfg.Cleaning.Strict = o.strict
	}
	if o.set["head"] {
		cfg.Cleaning.HeadRows = o.headRows
	}
}

func loadConfig(opts *cliOptions) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFrom(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	opts.apply(cfg)
	return cfg
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		return err
	}

	cfg := loadConfig(opts)
	paths.ResolveConfig(cfg)

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.WithRunID(ctx, infrastructure.NewRunID())
	logger.InfoContext(ctx, "Starting appointment cleaning",
		slog.String("version", config.AppVersion),
		slog.String("input", cfg.Cleaning.Input),
		slog.String("output_csv", cfg.Cleaning.OutputCSV),
		slog.String("output_xlsx", cfg.Cleaning.OutputXLSX),
		slog.String("timestamp_policy", cfg.Cleaning.TimestampPolicy),
		slog.Bool("strict", cfg.Cleaning.Strict))

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, stderr, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize tracing", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	metrics := infrastructure.NewPipelineMetrics()
	defer writeMetrics(logger, metrics, cfg.Metrics.TextfilePath)

	pipeline, err := operations.NewPipeline(operations.Options{
		TimestampPolicy: domain.TimestampPolicy(cfg.Cleaning.TimestampPolicy),
		HeadRows:        cfg.Cleaning.HeadRows,
		Logger:          logger,
		Tracer:          tracing.Tracer,
		Metrics:         metrics,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Invalid cleaning options", slog.String("error", err.Error()))
		return err
	}

	result, err := pipeline.Run(ctx, cfg.Cleaning.Input)
	if err != nil {
		logger.ErrorContext(ctx, "Cleaning failed",
			slog.String("step", operations.FailedStep(err)),
			slog.String("error", err.Error()))
		return err
	}

	if cfg.Cleaning.Strict {
		appointments, err := dataprocessing.ToAppointments(result.Dataset)
		if err != nil {
			logger.ErrorContext(ctx, "Cleaned dataset violates the appointment contract",
				slog.String("error", err.Error()))
			return err
		}
		logger.InfoContext(ctx, "Appointment contract verified", slog.Int("records", len(appointments)))
	}

	if targets := exportTargets(cfg.Cleaning); len(targets) > 0 {
		if err := exporter.NewExporter(paths, logger).Export(ctx, result.Dataset, targets); err != nil {
			logger.ErrorContext(ctx, "Export failed", slog.String("error", err.Error()))
			return err
		}
	}

	logger.InfoContext(ctx, "Cleaning complete",
		slog.String("run_id", result.RunID),
		slog.Int("rows_in", result.Initial.Rows),
		slog.Int("rows_out", result.Final.Rows),
		slog.Int("removed", result.RemovedTotal()),
		slog.Duration("duration", result.Duration))
	return nil
}

func exportTargets(cfg config.CleaningConfig) []exporter.Target {
	var targets []exporter.Target
	if cfg.OutputCSV != "" {
		targets = append(targets, exporter.Target{Path: cfg.OutputCSV, Format: exporter.FormatCSV, BOM: cfg.WriteBOM})
	}
	if cfg.OutputXLSX != "" {
		targets = append(targets, exporter.Target{Path: cfg.OutputXLSX, Format: exporter.FormatXLSX})
	}
	return targets
}

func writeMetrics(logger *slog.Logger, metrics *infrastructure.PipelineMetrics, path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Warn("Failed to write metrics", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	logger.Debug("Metrics written", slog.String("path", path))
}

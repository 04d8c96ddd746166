package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"noshowcli/internal/config"
)

// logState is the process-wide logger and the log file behind it
var logState struct {
	once   sync.Once
	logger *slog.Logger

	mu   sync.Mutex
	file *os.File
}

// InitializeLogger builds the process logger from cfg and installs it as the
// slog default. Only the first call has an effect.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	logState.once.Do(func() {
		var w io.Writer
		w, err = logWriter(cfg)
		if err != nil {
			return
		}
		logState.logger = NewJSONLogger(w, cfg.Level)
		slog.SetDefault(logState.logger)
	})
	return logState.logger, err
}

// GetLogger returns the process logger, or the slog default before
// InitializeLogger has run
func GetLogger() *slog.Logger {
	if logState.logger == nil {
		return slog.Default()
	}
	return logState.logger
}

// WithComponent tags logger with the component emitting the records
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With(slog.String("component", component))
}

// logWriter picks stdout, the log file or both
func logWriter(cfg config.LoggingConfig) (io.Writer, error) {
	output := strings.ToLower(cfg.Output)
	if output != "file" && output != "both" {
		return os.Stdout, nil
	}

	file, err := openLogFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logState.mu.Lock()
	logState.file = file
	logState.mu.Unlock()

	if output == "file" {
		return file, nil
	}
	return io.MultiWriter(os.Stdout, file), nil
}

// NewJSONLogger builds a JSON logger writing to w. Records logged with a
// context from WithRunID get a run_id attribute unless they set one.
func NewJSONLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLogLevel(level),
	})
	return slog.New(&runHandler{Handler: handler})
}

type runHandler struct {
	slog.Handler
}

func (h *runHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RunIDFrom(ctx); id != "" && !hasAttr(r, LogKeyRunID) {
		r.AddAttrs(slog.String(LogKeyRunID, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *runHandler) WithGroup(name string) slog.Handler {
	return &runHandler{Handler: h.Handler.WithGroup(name)}
}

func hasAttr(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		found = a.Key == key
		return !found
	})
	return found
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CloseLogFile closes the log file opened by InitializeLogger, if any
func CloseLogFile() error {
	logState.mu.Lock()
	defer logState.mu.Unlock()

	if logState.file == nil {
		return nil
	}
	err := logState.file.Close()
	logState.file = nil
	return err
}

// ResetLoggerForTesting lets the next InitializeLogger call build a new logger
func ResetLoggerForTesting() {
	_ = CloseLogFile()
	logState.logger = nil
	logState.once = sync.Once{}
}

// openLogFile opens filePath for appending, creating its directory
func openLogFile(filePath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory for %s: %w", filePath, err)
	}
	return os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the directories a cleaning run reads from and writes to
type Paths struct {
	WorkDir string
	LogsDir string
}

// GetPaths resolves application paths against the current working directory
func GetPaths() (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %v", err)
	}
	return NewPaths(wd), nil
}

// NewPaths builds the path set rooted at dir
func NewPaths(dir string) *Paths {
	return &Paths{
		WorkDir: dir,
		LogsDir: filepath.Join(dir, DefaultLogsDir),
	}
}

// Resolve returns p unchanged when absolute, otherwise joined to the working directory
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.WorkDir, path)
}

// ResolveConfig rewrites every relative path in cfg against the working directory
func (p *Paths) ResolveConfig(cfg *Config) {
	cfg.Cleaning.Input = p.Resolve(cfg.Cleaning.Input)
	cfg.Cleaning.OutputCSV = p.Resolve(cfg.Cleaning.OutputCSV)
	cfg.Cleaning.OutputXLSX = p.Resolve(cfg.Cleaning.OutputXLSX)
	cfg.Logging.FilePath = p.Resolve(cfg.Logging.FilePath)
	cfg.Metrics.TextfilePath = p.Resolve(cfg.Metrics.TextfilePath)
}

// EnsureDirectories creates the directories that must exist before a run
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

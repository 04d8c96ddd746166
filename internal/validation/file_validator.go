package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"noshowcli/internal/errors"
)

// FileValidator provides the file checks shared by the loader and the exporter
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks that a path resolves to a readable regular file.
// A missing path or a directory yields a NOT_FOUND error.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return errors.NewNotFoundError(fmt.Sprintf("file %s", path)).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewAppError(errors.ErrTypeNotFound, fmt.Sprintf("cannot stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return errors.NewAppError(errors.ErrTypeNotFound, fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewAppError(errors.ErrTypeNotFound, fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// IsExcelFile reports whether the path has a workbook extension
func IsExcelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".xlsx" || ext == ".xlsm"
}

// ValidateExcelFile checks if a file is an existing Excel workbook
func (v *FileValidator) ValidateExcelFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if !IsExcelFile(path) {
		v.logger.Error("File is not an Excel file",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
		return errors.NewParsingError(fmt.Sprintf("file %s is not an Excel workbook", path), nil)
	}

	// Check it's not a temp file
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel file",
			slog.String("file", path))
		return errors.NewParsingError(fmt.Sprintf("file %s is a temporary Excel file", path), nil)
	}

	return nil
}

// ValidateOutputDirectory ensures the directory of an output file exists and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	name := testFile.Name()
	testFile.Close()
	os.Remove(name)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

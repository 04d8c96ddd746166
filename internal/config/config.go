package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"noshowcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	Tracing  TracingConfig  `yaml:"tracing" envconfig:"TRACING"`
	Metrics  MetricsConfig  `yaml:"metrics" envconfig:"METRICS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// CleaningConfig contains the inputs and outputs of a cleaning run
type CleaningConfig struct {
	Input           string `yaml:"input" envconfig:"INPUT" validate:"required"`
	OutputCSV       string `yaml:"output_csv" envconfig:"OUTPUT_CSV"`
	OutputXLSX      string `yaml:"output_xlsx" envconfig:"OUTPUT_XLSX"`
	WriteBOM        bool   `yaml:"write_bom" envconfig:"WRITE_BOM"`
	TimestampPolicy string `yaml:"timestamp_policy" envconfig:"TIMESTAMP_POLICY" validate:"oneof=fail drop"`
	HeadRows        int    `yaml:"head_rows" envconfig:"HEAD_ROWS" validate:"gte=0"`
	Strict          bool   `yaml:"strict" envconfig:"STRICT"`
}

// TracingConfig contains OpenTelemetry tracing configuration
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" envconfig:"ENABLED"`
	Exporter    string  `yaml:"exporter" envconfig:"EXPORTER" validate:"oneof=stdout none"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// TextfilePath is where metrics are written after a run; empty disables it
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

var configValidator = validator.New()

// Load loads configuration from the first config file found and environment
// variables prefixed with NOSHOW. Environment variables take precedence.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file path. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to load config from file %s", configFile), err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file on cfg; keys absent from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	// Always JSON
	c.Logging.Format = "json"

	if c.Logging.Output == "both" || c.Logging.Output == "file" {
		if c.Logging.FilePath == "" {
			c.Logging.FilePath = DefaultLogFile
		}
	}

	if err := configValidator.Struct(c); err != nil {
		return errors.NewAppError(errors.ErrTypeValidation, "config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   "json",
			Output:   "both",
			FilePath: DefaultLogFile,
		},
		Cleaning: CleaningConfig{
			Input:           DefaultInputFile,
			TimestampPolicy: DefaultTimestampPolicy,
			HeadRows:        DefaultHeadRows,
		},
		Tracing: TracingConfig{
			Enabled:     false,
			Exporter:    "stdout",
			SampleRatio: 1.0,
		},
	}
}

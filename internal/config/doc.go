// Package config loads the cleaner configuration.
//
// Values are resolved in three layers, later layers winning:
//
//  1. Default()
//  2. An optional YAML file: $NOSHOW_CONFIG_FILE, ./config.yaml or ./configs/config.yaml
//  3. Environment variables prefixed with NOSHOW (kelseyhightower/envconfig)
//
// Example config.yaml:
//
//	logging:
//	  level: debug
//	  output: both
//	  file_path: logs/cleaner.log
//	cleaning:
//	  input: KaggleV2-May-2016.csv
//	  output_csv: cleaned_KaggleV2-May-2016.csv
//	  timestamp_policy: drop
//	tracing:
//	  enabled: true
//	  exporter: stdout
//	metrics:
//	  textfile_path: metrics/cleaner.prom
//
// The equivalent environment variables are NOSHOW_LOGGING_LEVEL,
// NOSHOW_CLEANING_TIMESTAMP_POLICY, NOSHOW_TRACING_ENABLED and so on.
//
// Paths holds directories resolved against the working directory, so relative
// input and output paths mean what they mean at the shell prompt.
package config

package config

// Application constants
const (
	AppName    = "No-Show Cleaner"
	AppVersion = "1.0.0"

	// EnvPrefix prefixes every environment variable, e.g. NOSHOW_CLEANING_INPUT
	EnvPrefix = "NOSHOW"

	DefaultInputFile       = "KaggleV2-May-2016.csv"
	DefaultCleanedCSV      = "cleaned_KaggleV2-May-2016.csv"
	DefaultCleanedSheet    = "cleaned"
	DefaultTimestampPolicy = "fail"
	DefaultHeadRows        = 5

	DefaultLogsDir  = "logs"
	DefaultLogFile  = "logs/cleaner.log"
	DefaultLogLevel = "info"
)

package sqlerr

// Config controls how errors are read and composed.
type Config struct {
	// MaxRecords bounds how many diagnostic records are read from one handle.
	// Drivers normally report a handful; the bound protects against a driver
	// that never reports end-of-records.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "max_records" key
	//   - Environment variable SQLERR_MAX_RECORDS
	//
	// Default: 64
	MaxRecords int `yaml:"max_records" envconfig:"SQLERR_MAX_RECORDS"`

	// RecordSeparator joins the records of one failure in the composed message.
	//
	// Default: "; "
	RecordSeparator string `yaml:"record_separator" envconfig:"SQLERR_RECORD_SEPARATOR"`

	// UnknownErrorText replaces the record list when a handle has no diagnostics.
	//
	// Default: "unknown error: the driver did not supply any diagnostics"
	UnknownErrorText string `yaml:"unknown_error_text" envconfig:"SQLERR_UNKNOWN_ERROR_TEXT"`
}

// Logger is the subset of logger.Logger used by this package.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, err error, fields ...map[string]interface{})

	// Warn logs a warning message.
	Warn(msg string, err error, fields ...map[string]interface{})

	// Error logs an error message.
	Error(msg string, err error, fields ...map[string]interface{})
}

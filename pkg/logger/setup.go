package logger

import (
	"strings"
)

// SetupLogger builds a logger for the CLI from flag values. Unrecognized
// levels fall back to info so a typo never disables logging.
func SetupLogger(logLevel string, logJSON bool) Logger {
	level := InfoLevel
	switch strings.ToLower(logLevel) {
	case "debug":
		level = DebugLevel
	case "info":
		level = InfoLevel
	case "warn", "warning":
		level = WarnLevel
	case "error":
		level = ErrorLevel
	}
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.JSON = logJSON
	return NewLogger(cfg)
}

package types

import (
	"errors"
	"log/slog"
	"strings"
)

// Config holds the settings loaded from config.yaml.
type Config struct {
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
	PageSize  int    `json:"default_page_size" yaml:"default_page_size"`
}

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config validation errors.
var (
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
	ErrPageSizeInvalid  = errors.New("default page size must be positive")
)

// Validate checks that the Config is well-formed. Empty log settings are
// valid and mean the defaults.
func (c Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			return err
		}
	}
	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return ErrLogFormatUnknown
	}
	if c.PageSize <= 0 {
		return ErrPageSizeInvalid
	}
	return nil
}

// ParseLogLevel maps debug, info, warn, and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, ErrLogLevelUnknown
}

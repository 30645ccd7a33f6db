package types

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "defaults are valid", config: Config{PageSize: 20}},
		{name: "unknown log level", config: Config{LogLevel: "verbose", PageSize: 20}, wantErr: ErrLogLevelUnknown},
		{name: "unknown log format", config: Config{LogFormat: "xml", PageSize: 20}, wantErr: ErrLogFormatUnknown},
		{name: "zero page size", config: Config{PageSize: 0}, wantErr: ErrPageSizeInvalid},
		{name: "negative page size", config: Config{PageSize: -3}, wantErr: ErrPageSizeInvalid},
		{name: "json format with debug level", config: Config{LogLevel: "debug", LogFormat: LogFormatJSON, PageSize: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLogLevel("loud")
	assert.ErrorIs(t, err, ErrLogLevelUnknown)
}

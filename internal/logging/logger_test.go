package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bachi-network/bachi-deploy/internal/domain/config"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.RuntimeConfig
		enabled slog.Level
		hidden  slog.Level
	}{
		{name: "default is warn", cfg: &config.RuntimeConfig{}, enabled: slog.LevelWarn, hidden: slog.LevelInfo},
		{name: "debug flag", cfg: &config.RuntimeConfig{Debug: true}, enabled: slog.LevelDebug, hidden: slog.LevelDebug - 1},
		{name: "log level overrides debug", cfg: &config.RuntimeConfig{Debug: true, LogLevel: "error"}, enabled: slog.LevelError, hidden: slog.LevelWarn},
		{name: "info level", cfg: &config.RuntimeConfig{LogLevel: "INFO"}, enabled: slog.LevelInfo, hidden: slog.LevelDebug},
		{name: "unknown level keeps default", cfg: &config.RuntimeConfig{LogLevel: "loud"}, enabled: slog.LevelWarn, hidden: slog.LevelInfo},
		{name: "nil config", cfg: nil, enabled: slog.LevelWarn, hidden: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.cfg)
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.hidden))
		})
	}
}

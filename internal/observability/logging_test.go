package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/job-portal/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.LoggerConfig
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{name: "json at debug", cfg: config.LoggerConfig{Level: "DEBUG", Format: "json"}, enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
		{name: "console at warn", cfg: config.LoggerConfig{Level: "warn", Format: "console"}, enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
		{name: "unknown level falls back to info", cfg: config.LoggerConfig{Level: "chatty"}, enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			logger, err := NewLogger(tc.cfg, config.AppConfig{Name: "job-portal", Env: "test", Version: "dev"})
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tc.enabled))
			assert.False(t, logger.Core().Enabled(tc.muted))
		})
	}
}

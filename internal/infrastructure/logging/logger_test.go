package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/version"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		level   zapcore.Level
	}{
		{"default", Options{}, false, zapcore.InfoLevel},
		{"debug", Options{Level: "debug"}, false, zapcore.DebugLevel},
		{"development keeps level", Options{Level: "warn", Development: true}, false, zapcore.WarnLevel},
		{"bad level", Options{Level: "loud"}, true, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			assert.False(t, logger.Core().Enabled(tt.level-1))
		})
	}
}

func readLog(t *testing.T, logger *Logger, path string) string {
	t.Helper()
	_ = logger.Sync()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func TestFromConfigProductionJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexosd.log")
	cfg := config.Default().Logging
	cfg.Outputs = []string{path}

	logger, err := FromConfig(cfg)
	require.NoError(t, err)

	logger.Named("window").Info("window opened", zap.String("window_id", "terminal"))
	logger.Debug("dropped at info")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(readLog(t, logger, path)), &entry))
	assert.Equal(t, "window opened", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "window", entry["logger"])
	assert.Equal(t, "terminal", entry["window_id"])
	assert.Equal(t, version.Version, entry["version"])
	assert.Contains(t, entry, "timestamp")
}

func TestFromConfigDevelopmentConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexosd.log")
	logger, err := FromConfig(config.LogConfig{Level: "debug", Development: true, Outputs: []string{path}})
	require.NoError(t, err)

	logger.Debug("hub attached")

	line := readLog(t, logger, path)
	assert.Contains(t, line, "hub attached")
	assert.False(t, strings.HasPrefix(line, "{"))
}

func TestNop(t *testing.T) {
	assert.False(t, NewNop().Core().Enabled(zapcore.FatalLevel))
}

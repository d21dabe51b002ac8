package observability

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KirkDiggler/rpg-sheet/internal/config"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

func TestNewLogger_JSON(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_Console(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpg-sheet.log")

	logger, err := NewLogger(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		File:   config.LogFileConfig{Path: path, MaxSizeMB: 1},
	})
	require.NoError(t, err)

	logger.Info("roll recorded", zap.String("roll_id", "roll_1"))
	logger.Debug("filtered out")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"roll recorded"`)
	assert.Contains(t, string(data), `"roll_id":"roll_1"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestInterceptorLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := InterceptorLogger(zap.New(core))

	logger.Log(context.Background(), grpc_logging.LevelWarn, "finished call",
		"grpc.method", "RollDice",
		"grpc.code", "OK",
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "finished call", entries[0].Message)
	assert.Equal(t, "RollDice", entries[0].ContextMap()["grpc.method"])
	assert.Equal(t, "OK", entries[0].ContextMap()["grpc.code"])
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	log, err := New("prod", "warn")
	require.NoError(t, err)

	assert.False(t, log.SugaredLogger.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.SugaredLogger.Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	log, err := New("dev", "loud")
	require.NoError(t, err)

	assert.True(t, log.SugaredLogger.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNewNop(t *testing.T) {
	log := NewNop().With("component", "test")
	log.Info("discarded", "key", "value")
	log.Sync()
}

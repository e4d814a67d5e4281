package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	require.NoError(t, InitLogger(zapcore.InfoLevel))
	t.Cleanup(func() { SetLevel(zapcore.InfoLevel) })

	assert.False(t, L().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, L().Core().Enabled(zapcore.InfoLevel))

	SetLevel(zapcore.DebugLevel)
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))
}

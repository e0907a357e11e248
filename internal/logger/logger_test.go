package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type stubConfig struct {
	level string
	dev   bool
}

func (c stubConfig) Level() string     { return c.level }
func (c stubConfig) Development() bool { return c.dev }

func TestNew(t *testing.T) {
	log, err := New(stubConfig{level: "debug", dev: true})
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(stubConfig{level: "warn"})
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, log.Core().Enabled(zapcore.ErrorLevel))

	_, err = New(stubConfig{level: "loud"})
	require.Error(t, err)
}

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel(LevelInfo)

	tests := []struct {
		in   string
		want string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{"verbose", "info"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			SetLevel(tt.in)
			assert.Equal(t, tt.want, Level())
		})
	}
}

func TestNew(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := New(core)

	logger.Debugf("exit code: %d", 3)
	logger.Warnf("careful")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "exit code: 3", entries[0].Message)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	}
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Errorf("dropped %s", "message")
	})
}

package zap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/bitwire"
)

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Debug("d", nil)
	l.Info("i", bitwire.Fields{"b": 2, "a": 1})
	l.Warn("w", bitwire.Fields{"reason": "corrupt"})
	l.Error("e", bitwire.Fields{})

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)

	ctx := entries[1].Context
	require.Len(t, ctx, 2)
	assert.Equal(t, "a", ctx[0].Key)
	assert.Equal(t, "b", ctx[1].Key)
	assert.Equal(t, "corrupt", entries[2].ContextMap()["reason"])
}

func TestNilLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() { New(nil).Warn("x", bitwire.Fields{"k": "v"}) })
}

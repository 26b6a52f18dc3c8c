package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{input: "debug", expected: zapcore.DebugLevel},
		{input: "DEBUG", expected: zapcore.DebugLevel},
		{input: "info", expected: zapcore.InfoLevel},
		{input: "", expected: zapcore.InfoLevel},
		{input: "warning", expected: zapcore.WarnLevel},
		{input: "warn", expected: zapcore.WarnLevel},
		{input: "error", expected: zapcore.ErrorLevel},
		{input: "bogus", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestSet_RoutesMessages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Infof("rule %s scheduled", "r1")
	Warnf("retrying %d", 2)
	Errorw("post failed", "instance", "i1")

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "rule r1 scheduled", entries[0].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, "i1", entries[2].ContextMap()["instance"])
	}
}

func TestInitialize_KeepsLoggerOnError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	missing := filepath.Join(t.TempDir(), "missing", "metasync.log")
	err := initialize("info", []string{missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build logger")

	Info("still routed")
	assert.Equal(t, 1, logs.Len())
}

func TestInitialize_WritesToFile(t *testing.T) {
	t.Cleanup(func() { Set(zap.NewNop()) })

	path := filepath.Join(t.TempDir(), "metasync.log")
	require.NoError(t, initialize("debug", []string{path}))

	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
}

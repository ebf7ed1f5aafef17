package logger

import (
	"path/filepath"
	"testing"

	"github.com/samvad-hq/pdd-open-client/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitSetsLevel(t *testing.T) {
	log, err := Init(&config.Config{AppName: "test", LogLevel: "warn"})
	require.NoError(t, err)
	require.NotNil(t, log)
	require.NotNil(t, S)

	assert.False(t, S.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, S.Desugar().Core().Enabled(zapcore.WarnLevel))

	log.InfoObj("dropped", "k", 1)
	log.WarnObj("kept", "k", map[string]any{"a": 1})
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	S, obj = nil, nil
	InfoObj("x", "k", 1)
	ErrorObj("x", "k", 1)
	assert.NoError(t, Close())
}

func TestCallerIsTheLoggingSite(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := install(core, "test")
	t.Cleanup(func() { S, obj = nil, nil })

	InfoObj("helper", "k", 1)
	log.WarnObj("interface", "k", 2)
	S.Infow("sugared", "k", 3)

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "logger_test.go", filepath.Base(e.Caller.File), e.Message)
		assert.Equal(t, "test", e.ContextMap()["app"], e.Message)
	}
	assert.Equal(t, map[string]any{"k": int64(2)}, withoutApp(entries[1].ContextMap()))
}

func withoutApp(m map[string]any) map[string]any {
	delete(m, "app")
	return m
}

package debugger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogModelOutput(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	LogModelOutput(logger, "gemini", `{"city":"Paris"}`)
	LogModelOutput(logger, "gemini", "not json at all")

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Contains(t, entries[0].ContextMap()["json"], "\"city\": \"Paris\"")
	assert.Equal(t, "not json at all", entries[1].ContextMap()["raw"])
}

func TestLogModelOutput_SkipsAboveDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	LogModelOutput(zap.New(core), "gemini", "x")
	LogModelOutput(nil, "gemini", "x")
	assert.Zero(t, logs.Len())
}

func TestLogModelOutput_Truncates(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	LogModelOutput(zap.New(core), "gemini", strings.Repeat("a", maxLoggedOutput+100))
	raw, _ := logs.All()[0].ContextMap()["raw"].(string)
	assert.Len(t, raw, maxLoggedOutput)
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.Equal(t, zerolog.InfoLevel, logger.zl.GetLevel())
	assert.Equal(t, zerolog.WarnLevel, NewWithLevel("warning").zl.GetLevel())
}

func TestInfo_WritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.Info("Board %d searched by %s", 42, "dog-lover")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Board 42 searched by dog-lover", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.Error("Failed to process request %d: %s", 404, "not found")

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "Failed to process request 404: not found")
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("dropped")
	logger.Warn("Warning: %s count is %d", "images", 11)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "Warning: images count is 11")
}

func TestDebug_FilteredAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.Debug("cache key %s", "board-search:1")
	assert.Empty(t, buf.String())

	debugLogger := NewWithWriter(&buf, "DEBUG")
	debugLogger.Debug("cache key %s", "board-search:1")
	assert.Equal(t, 1, strings.Count(buf.String(), "board-search:1"))
}

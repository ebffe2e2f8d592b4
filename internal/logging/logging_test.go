package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"productapi/internal/config"
	"productapi/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("dropped")
	logger.Warn("kept", slog.Int64("product_id", 7))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "productapi", entry["service.name"])
	assert.Equal(t, float64(7), entry["product_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(config.LogConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("whatever"))
}

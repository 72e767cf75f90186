package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/nitecrawlers/internal/config"
)

func TestNew_Production(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Environment: "production", LogLevel: slog.LevelInfo, StoreNamespace: "kid1"}

	WithRequestID(New(cfg, &buf), "abc").Info("Decision applied", "day", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Decision applied", rec["msg"])
	assert.Equal(t, "nitecrawlers", rec["service"])
	assert.Equal(t, "kid1", rec["namespace"])
	assert.Equal(t, "abc", rec["request_id"])
}

func TestNew_DevelopmentLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Environment: "development", LogLevel: slog.LevelWarn}

	log := New(cfg, &buf)
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "service=nitecrawlers")
}

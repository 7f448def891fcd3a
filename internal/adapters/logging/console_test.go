package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundwork-sh/groundwork/internal/ports"
)

func TestConsoleLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithTimestamp(false))

	logger.Info(context.Background(), "step applied", ports.F("step", "apt:update"))

	assert.Contains(t, buf.String(), "[INFO] step applied")
	assert.Contains(t, buf.String(), "step=apt:update")
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn), WithTimestamp(false))

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "hidden")
	logger.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithJSONFormat(true), WithTimestamp(false))

	logger.Error(context.Background(), "step failed", ports.F("step", "ufw:enable"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "step failed", entry["msg"])
	assert.Equal(t, "ufw:enable", entry["step"])
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithTimestamp(false)).
		With(ports.F("run", "r-1"))

	logger.Info(context.Background(), "starting")

	assert.Contains(t, buf.String(), "run=r-1")
}

func TestNopLogger_DiscardsEverything(t *testing.T) {
	logger := NewNopLogger()
	logger.Info(context.Background(), "nothing happens")
	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
	assert.Same(t, logger, logger.With(ports.F("k", "v")))
}

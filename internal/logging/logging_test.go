package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", "text", &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "edit")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "key=edit")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("DEBUG", "json", &buf)
	require.NoError(t, err)

	logger.Debug("dispatch", "key", "edit")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "dispatch", rec["msg"])
	assert.Equal(t, "edit", rec["key"])
}

func TestNewRejectsUnknown(t *testing.T) {
	_, err := New("loud", "text", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log level")
	_, err = New("info", "xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log format")
}

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("session", "abc").Int("rows", 3).Msg("staged import")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "staged import", entry["message"])
	assert.Equal(t, "abc", entry["session"])
	assert.EqualValues(t, 3, entry["rows"])
	assert.NotEmpty(t, entry["time"])
}

func TestNew_ReturnsUsableLogger(t *testing.T) {
	log := New()
	// Must not panic when logging.
	log.Debug().Msg("probe")
}

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "trainee-attendance", "v1.2.0", "production")

	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Info("scan recorded", "trainee_id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trainee-attendance", entry["app"])
	assert.Equal(t, "v1.2.0", entry["version"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "abc", entry["trainee_id"])
}

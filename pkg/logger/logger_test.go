package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatLine(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&Config{Level: "info"}, &buf)
	require.NoError(t, err)

	l.Info("Signal logged: LAE_2024-01-15-103000")

	line := strings.TrimSpace(buf.String())
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - INFO - Signal logged: LAE_2024-01-15-103000$`), line)
}

func TestTextFormatFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&Config{Level: "info", Format: "text"}, &buf)
	require.NoError(t, err)

	l.Error("Rotation failed", String("path", "signals.json"), Error(errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, " - ERROR - Rotation failed")
	assert.Contains(t, out, "path=signals.json")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "caller=")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", Int("count", 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestInvalidConfig(t *testing.T) {
	_, err := NewWithWriter(&Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewWithWriter(&Config{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "signallog.log")
	l, err := New(&Config{Level: "info", Format: "json", Output: path, MaxSizeMB: 1})
	require.NoError(t, err)

	l.Info("Rotated log file", String("path", "signals.json"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(b, &entry))
	assert.Equal(t, "Rotated log file", entry["message"])
	assert.Equal(t, "signals.json", entry["path"])
}

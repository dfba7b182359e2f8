package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	prev := GetLevel()
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(prev)
		DisableFileLogging()
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"", INFO},
		{"warning", WARN},
		{" error ", ERROR},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	SetLevel(WARN)

	InfoC("poll", "hidden")
	WarnCF("poll", "shown", map[string]any{"offset": 10})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] poll: shown {offset=10}")
}

func TestFieldsAreSorted(t *testing.T) {
	buf := captureOutput(t)
	SetLevel(DEBUG)

	DebugCF("dispatch", "routed", map[string]any{"route": "id", "chat_id": 7, "b": true})

	assert.Contains(t, buf.String(), "{b=true, chat_id=7, route=id}")
}

func TestFileLogging(t *testing.T) {
	captureOutput(t)
	SetLevel(INFO)

	path := filepath.Join(t.TempDir(), "logs", "idbot.log")
	require.NoError(t, EnableFileLogging(path))

	ErrorCF("telegram", "send failed", map[string]any{"method": "sendMessage"})
	DisableFileLogging()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "telegram", entry.Component)
	assert.Equal(t, "send failed", entry.Message)
	assert.Equal(t, "sendMessage", entry.Fields["method"])
}

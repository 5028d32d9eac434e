package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected into a pipe and returns
// everything fn wrote. The logger binds os.Stdout at construction, so fn
// must build the logger itself.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestNewAllLevelsAndFormats(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error"}
	formats := []string{"json", "console"}

	for _, level := range levels {
		for _, format := range formats {
			t.Run(level+"/"+format, func(t *testing.T) {
				// Emitting through every level must never panic,
				// whatever the encoder configuration.
				captureStdout(t, func() {
					log, err := New(Config{Level: level, Format: format})
					require.NoError(t, err)

					log.Debug("debug entry", String("k", "v"))
					log.Info("info entry", Int("n", 1))
					log.Warn("warn entry")
					log.Error("error entry")
				})
			})
		}
	}
}

func TestNewDebugJSONCarriesCaller(t *testing.T) {
	out := captureStdout(t, func() {
		log, err := New(Config{Level: "debug", Format: "json"})
		require.NoError(t, err)
		log.Debug("caller check")
	})

	line := strings.TrimSpace(out)
	require.NotEmpty(t, line)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "caller check", entry["msg"])
	assert.Contains(t, entry, "caller")
	assert.NotEmpty(t, entry["caller"])
}

func TestNewInfoJSONOmitsCaller(t *testing.T) {
	out := captureStdout(t, func() {
		log, err := New(Config{Level: "info", Format: "json"})
		require.NoError(t, err)
		log.Info("no caller expected")
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.NotContains(t, entry, "caller")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "verbose", Format: "json"})
	assert.Error(t, err)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(Config{Level: "info", Format: "logfmt"})
	assert.Error(t, err)
}

func TestNamedAndWith(t *testing.T) {
	out := captureStdout(t, func() {
		log, err := New(Config{Level: "info", Format: "json"})
		require.NoError(t, err)
		log.Named("sub").With(String("component", "test")).Info("tagged")
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "sub", entry["logger"])
	assert.Equal(t, "test", entry["component"])
}

func TestNopDiscards(t *testing.T) {
	out := captureStdout(t, func() {
		Nop().Error("should go nowhere")
	})
	assert.Empty(t, out)
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrecords/internal/shared/config"
)

func TestSourceHandler_OnlyConfiguredLevels(t *testing.T) {
	cases := []struct {
		name   string
		emit   func(*slog.Logger)
		source bool
	}{
		{"info is quiet", func(l *slog.Logger) { l.Info("upload stored") }, false},
		{"warn carries source", func(l *slog.Logger) { l.Warn("orphan blob") }, true},
		{"error carries source", func(l *slog.Logger) { l.Error("sweep failed") }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelWarn, slog.LevelError)

			tc.emit(slog.New(h))

			assert.Equal(t, tc.source, strings.Contains(buf.String(), "source="), buf.String())
		})
	}
}

func TestSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelError)

	slog.New(h).With("user_id", "u-1").WithGroup("file").Info("viewed", "id", "f-9")

	out := buf.String()
	assert.Contains(t, out, "user_id=u-1")
	assert.Contains(t, out, "file.id=f-9")
	assert.NotContains(t, out, "source=")
}

func TestSourceHandler_DelegatesEnabled(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	h := NewConditionalSourceHandler(base, slog.LevelError)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInit_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	prev := Logger
	t.Cleanup(func() {
		Logger = prev
		if prev != nil {
			slog.SetDefault(prev)
		}
	})

	err := Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}, "release")
	require.NoError(t, err)

	NewLogger().Infow("session issued", "user_id", "u-1")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "session issued", entry["msg"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.NotContains(t, entry, "source")
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("sponsor created", "sponsor_id", "rec1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sponsor created", entry["msg"])
	assert.Equal(t, "rec1", entry["sponsor_id"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "text")

	logger.Debug("loaded", "sponsors", 3)

	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "sponsors=3")
}

func TestFromContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&buf, "info", "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	WithFields(ctx, "rows", 2).Info("import started")

	assert.Contains(t, buf.String(), "request_id=req-42")
	assert.Contains(t, buf.String(), "rows=2")
}

func TestFromContext_NoRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&buf, "info", "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	FromContext(context.Background()).Info("plain")

	assert.NotContains(t, buf.String(), "request_id")
}

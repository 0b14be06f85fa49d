package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		warn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(tt.level, "text", &bytes.Buffer{})
			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.debug {
				t.Errorf("debug enabled = %v, want %v", got, tt.debug)
			}
			if got := logger.Enabled(ctx, slog.LevelWarn); got != tt.warn {
				t.Errorf("warn enabled = %v, want %v", got, tt.warn)
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New("info", "json", &buf).Info("accepted", "attempts", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "accepted" {
		t.Errorf("expected msg accepted, got %v", rec["msg"])
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "text", &buf)
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected logger from context to be used, got %q", buf.String())
	}

	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected default logger when none is set")
	}
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)

	logger.Debug("hidden")
	logger.Info("table cleaned", "rows_out", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1 (debug filtered): %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "table cleaned" {
		t.Errorf("msg = %v, want %q", entry["msg"], "table cleaned")
	}
	if entry["rows_out"] != float64(3) {
		t.Errorf("rows_out = %v, want 3", entry["rows_out"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	New("debug", "text", &buf).Debug("loaded", "path", "in.csv")

	if got := buf.String(); !strings.Contains(got, "msg=loaded") || !strings.Contains(got, "path=in.csv") {
		t.Errorf("text output = %q", got)
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	Setup("info", "text", &buf)
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	ctx = WithRunID(ctx, "abc")
	if got := RunID(ctx); got != "abc" {
		t.Errorf("RunID() = %q, want abc", got)
	}
	FromContext(ctx).Info("cleaning")

	got := buf.String()
	if !strings.Contains(got, "request_id=req-42") {
		t.Errorf("log should carry request_id: %q", got)
	}
	if !strings.Contains(got, "run_id=abc") {
		t.Errorf("log should carry run_id: %q", got)
	}

	buf.Reset()
	FromContext(context.Background()).Info("plain")
	if strings.Contains(buf.String(), "request_id") || strings.Contains(buf.String(), "run_id") {
		t.Errorf("log outside a request or run should carry neither id: %q", buf.String())
	}
}

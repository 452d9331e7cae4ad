package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/movelabhq/movelab/internal/config"
)

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	l.Info("hello", "port", 8080)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", record["msg"])
	}
	if record["port"] != float64(8080) {
		t.Errorf("port = %v, want 8080", record["port"])
	}
}

func TestNewLoggerWithWriter_PrettyContainsMessage(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	l.Info("server started", "addr", "0.0.0.0:8080")

	out := buf.String()
	if !strings.Contains(out, "server started") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "addr=") {
		t.Errorf("output missing attribute: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	l.Info("dropped")
	l.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info record should be filtered at WARN level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn record should pass at WARN level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"INFO", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := WithRequestID(context.Background(), "req-42")
	l.InfoContext(ctx, "handled")

	if !strings.Contains(buf.String(), "req-42") {
		t.Errorf("output missing request ID: %q", buf.String())
	}
	if RequestID(ctx) != "req-42" {
		t.Errorf("RequestID(ctx) = %q, want req-42", RequestID(ctx))
	}
}

func TestWithContext_NoRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	l.InfoContext(context.Background(), "handled")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("output should not contain request_id: %q", buf.String())
	}
}

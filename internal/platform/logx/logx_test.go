// internal/platform/logx/logx_test.go
package logx

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelWarn)

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("lines below level should be suppressed, got %q", out)
	}
	if !strings.Contains(out, "WRN warn line") {
		t.Errorf("warn line missing, got %q", out)
	}
}

func TestLogger_KeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	logger.Info("probing", "server", "search", "timeout", "5s")

	out := buf.String()
	if !strings.Contains(out, "server=search") || !strings.Contains(out, "timeout=5s") {
		t.Errorf("key/value pairs missing, got %q", out)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo).With("component", "registry")

	logger.Info("server registered", "name", "image")

	out := buf.String()
	if !strings.Contains(out, "component=registry") {
		t.Errorf("scoped field missing, got %q", out)
	}
	if !strings.Contains(out, "name=image") {
		t.Errorf("call field missing, got %q", out)
	}
}

func TestLogger_Err(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	logger.Err(nil)
	if buf.Len() != 0 {
		t.Errorf("nil error should log nothing, got %q", buf.String())
	}

	logger.Err(errors.New("boom"))
	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("error field missing, got %q", buf.String())
	}
}

func TestLogger_OddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	logger.Info("odd", "key")

	if !strings.Contains(buf.String(), "key=(missing)") {
		t.Errorf("odd kv should mark missing value, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"garbage", LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

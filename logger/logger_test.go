package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(buf *bytes.Buffer, level string) *Logger {
	return New(&Config{Level: level, Format: FormatJSON, Writer: buf}, "polyglot")
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return m
}

func TestNew_JSONCarriesServiceAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")

	l.Info("hello", Fields("target", "hi"))

	m := decodeLine(t, &buf)
	if m["message"] != "hello" {
		t.Errorf("expected message 'hello', got %v", m["message"])
	}
	if m[FieldService] != "polyglot" {
		t.Errorf("expected service 'polyglot', got %v", m[FieldService])
	}
	if m["target"] != "hi" {
		t.Errorf("expected target 'hi', got %v", m["target"])
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at info level, got %q", buf.String())
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "loud")

	l.Debug("hidden")
	l.Info("shown")
	m := decodeLine(t, &buf)
	if m["level"] != "info" {
		t.Errorf("expected info level, got %v", m["level"])
	}
}

func TestWithComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "debug").WithComponent("session").WithError(errors.New("boom"))

	l.Warn("careful")

	m := decodeLine(t, &buf)
	if m[FieldComponent] != "session" {
		t.Errorf("expected component 'session', got %v", m[FieldComponent])
	}
	if m["error"] != "boom" {
		t.Errorf("expected error 'boom', got %v", m["error"])
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "debug").WithFields(map[string]interface{}{FieldSessionID: "abc"})

	l.Error("failed")

	m := decodeLine(t, &buf)
	if m[FieldSessionID] != "abc" {
		t.Errorf("expected session_id 'abc', got %v", m[FieldSessionID])
	}
}

func TestConsoleFormat_NoColor(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "info", Format: FormatConsole, NoColor: true, Writer: &buf}, "polyglot")

	l.Info("ready")

	out := buf.String()
	if !strings.Contains(out, "[POL][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no color escapes, got %q", out)
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(&Config{Level: "debug", Format: FormatJSON, Writer: &buf})
	defer SetGlobalLogger(nil)

	Get("catalog").Info("loaded")

	m := decodeLine(t, &buf)
	if m[FieldComponent] != "catalog" {
		t.Errorf("expected component 'catalog', got %v", m[FieldComponent])
	}
}

func TestGetGlobalLogger_Default(t *testing.T) {
	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic.
	Nop().WithComponent("x").Error("ignored", Fields("k", "v"))
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, 2, "skipped", "dangling")
	if len(m) != 1 || m["a"] != 1 {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("translate", errors.New("timeout"))
	if ef[FieldOperation] != "translate" || ef[FieldError] != "timeout" {
		t.Errorf("unexpected error fields: %v", ef)
	}
	df := DurationFields("translate", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid json", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stdout"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

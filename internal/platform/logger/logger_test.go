package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "WARN", "json")

	log.Info("dropped")
	log.Warn("placeholder albums served", "kind", "albums")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["msg"] != "placeholder albums served" || entry["kind"] != "albums" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["source"]; !ok {
		t.Error("source location missing")
	}
}

func TestNewLogger_TextAndLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "LOUD", "text")

	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written with fallback level INFO")
	}
	if !strings.Contains(out, "msg=shown") {
		t.Errorf("text output = %q, want msg=shown", out)
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "INFO", "json")
	log.Info("view recorded", "base", "https://counter.test")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "view recorded" {
		t.Errorf("msg = %v, want %q", rec["msg"], "view recorded")
	}
	if _, ok := rec["source"]; !ok {
		t.Error("expected source attribute")
	}
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "DEBUG", "text")
	log.Debug("resolved bases", "count", 2)

	if !strings.Contains(buf.String(), `msg="resolved bases"`) {
		t.Errorf("unexpected text output: %q", buf.String())
	}
}

func TestNewWithWriter_UnknownLevelDefaultsToError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "LOUD", "json")
	log.Warn("dropped")
	if buf.Len() != 0 {
		t.Errorf("warn should be filtered at ERROR level, got %q", buf.String())
	}

	log.Error("kept")
	if buf.Len() == 0 {
		t.Error("error should be logged")
	}
}

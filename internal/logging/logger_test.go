package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("converting", String("input", "song.mp3"), Int("files", 3))
	line := buf.String()
	if !strings.Contains(line, "INFO") || !strings.Contains(line, "converting") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "input=song.mp3") || !strings.Contains(line, "files=3") {
		t.Fatalf("missing attrs in console line: %q", line)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("probing", String("binary", "ffprobe"))
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log line: %v", err)
	}
	if payload["msg"] != "probing" || payload["binary"] != "ffprobe" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(Options{Format: "xml", Writer: &buf}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("goes nowhere", Error(nil))
}

func TestWithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.WithGroup("engine").With(String("binary", "ffmpeg")).Info("invoked")
	line := buf.String()
	if !strings.Contains(line, "engine.binary=ffmpeg") {
		t.Fatalf("group-qualified attr missing: %q", line)
	}
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vizcast/internal/history"
)

func writeTestConfig(t *testing.T, dir string, extra string) string {
	t.Helper()
	path := filepath.Join(dir, "vizcast.toml")
	payload := "[output]\nhistory_path = \"" + filepath.Join(dir, "history.db") + "\"\n" + extra
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mp3", "b.mp3", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	inputs, err := expandInputs([]string{filepath.Join(dir, "*.mp3")})
	if err != nil {
		t.Fatalf("expandInputs: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 matches, got %v", inputs)
	}

	// A typo'd literal path fails the whole expansion up front rather
	// than surfacing later as a per-file failure.
	if _, err := expandInputs([]string{"/no/such/file.mp3"}); err == nil {
		t.Fatal("expected error for missing literal path")
	}
	if _, err := expandInputs([]string{dir}); err == nil {
		t.Fatal("expected error for directory argument")
	}

	inputs, err = expandInputs([]string{filepath.Join(dir, "a.mp3")})
	if err != nil {
		t.Fatalf("expandInputs literal: %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("unexpected literal result: %v", inputs)
	}

	// Duplicates collapse.
	aPath := filepath.Join(dir, "a.mp3")
	inputs, err = expandInputs([]string{aPath, filepath.Join(dir, "a.*")})
	if err != nil {
		t.Fatalf("expandInputs dedupe: %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("expected deduped single input, got %v", inputs)
	}

	if _, err := expandInputs([]string{filepath.Join(dir, "*.wav")}); err == nil {
		t.Fatal("expected error for glob with no matches")
	}
}

func TestPalettesCommandListsSchemes(t *testing.T) {
	out, err := runCommand(t, "palettes")
	if err != nil {
		t.Fatalf("palettes: %v", err)
	}
	for _, name := range []string{"viridis", "magma", "rainbow"} {
		if !strings.Contains(out, name) {
			t.Fatalf("palette listing should include %q:\n%s", name, out)
		}
	}
}

func TestConfigInitCreatesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected output to mention %q:\n%s", target, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config should exist: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when target exists without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestHistoryCommandShowsRecordedConversions(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, "")

	store, err := history.Open(context.Background(), filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	entry := history.Entry{
		Source: "/music/song.mp3",
		Output: "/music/song.mp4",
		Status: history.StatusCompleted,
	}
	if err := store.Record(context.Background(), entry); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, err := runCommand(t, "history", "--config", configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "song.mp3") || !strings.Contains(out, "completed") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
}

func TestHistoryCommandEmptyLedger(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, "")

	out, err := runCommand(t, "history", "--config", configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No conversions recorded yet.") {
		t.Fatalf("unexpected empty-ledger output:\n%s", out)
	}
}

func TestDepsCommandReportsMissingTools(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, "[engine]\nffmpeg = \"vizcast-test-missing-ffmpeg\"\nffprobe = \"vizcast-test-missing-ffprobe\"\n")

	out, err := runCommand(t, "deps", "--config", configPath)
	if err == nil {
		t.Fatal("expected error when tools are missing")
	}
	if !strings.Contains(out, "missing") {
		t.Fatalf("expected missing status in output:\n%s", out)
	}
}

func TestConvertRejectsUnknownType(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, "")

	_, err := runCommand(t, "convert", "--config", configPath, "--type", "sparkline", "song.mp3")
	if err == nil {
		t.Fatal("expected error for unknown visualization type")
	}
}

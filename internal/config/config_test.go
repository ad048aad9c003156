package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vizcast/internal/config"
	"vizcast/internal/viz"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Render.Type != "wave" || cfg.Render.Color != "viridis" || cfg.Render.Position != "bottom" {
		t.Fatalf("unexpected render defaults: %+v", cfg.Render)
	}
	if cfg.Render.Width != 1280 || cfg.Render.Height != 180 || cfg.Render.Margin != 50 {
		t.Fatalf("unexpected geometry defaults: %+v", cfg.Render)
	}
	if cfg.Render.FrameWidth != 1280 || cfg.Render.FrameHeight != 720 {
		t.Fatalf("unexpected frame defaults: %+v", cfg.Render)
	}
	if cfg.Engine.FFmpeg != "ffmpeg" || cfg.Engine.FFprobe != "ffprobe" {
		t.Fatalf("unexpected engine defaults: %+v", cfg.Engine)
	}
	if !cfg.Output.HistoryEnabled {
		t.Fatal("expected history enabled by default")
	}
	wantHistory := filepath.Join(tempHome, ".local", "share", "vizcast", "history.db")
	if cfg.Output.HistoryPath != wantHistory {
		t.Fatalf("unexpected history path: got %q want %q", cfg.Output.HistoryPath, wantHistory)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "vizcast.toml")

	payload := `
[render]
type = "both"
color = "magma"
position = "xy(10,20)"
height = 200

[engine]
ffmpeg = "/opt/ffmpeg/bin/ffmpeg"
workers = 4

[output]
dir = "` + tempDir + `/out"
history_enabled = false
`
	if err := os.WriteFile(configPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Render.Type != "both" || cfg.Render.Color != "magma" {
		t.Fatalf("overrides not applied: %+v", cfg.Render)
	}
	if cfg.Render.Width != 1280 {
		t.Fatalf("unset fields should keep defaults, got width %d", cfg.Render.Width)
	}
	if cfg.Engine.FFmpeg != "/opt/ffmpeg/bin/ffmpeg" || cfg.Engine.Workers != 4 {
		t.Fatalf("engine overrides not applied: %+v", cfg.Engine)
	}
	if cfg.Output.HistoryEnabled {
		t.Fatal("history_enabled override not applied")
	}
	if cfg.Output.Dir != filepath.Join(tempDir, "out") {
		t.Fatalf("unexpected output dir: %q", cfg.Output.Dir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		wantSub string
	}{
		{"bad type", "[render]\ntype = \"sparkline\"\n", "render.type"},
		{"bad color", "[render]\ncolor = \"chartreuse\"\n", "render.color"},
		{"bad position", "[render]\nposition = \"underneath\"\n", "render.position"},
		{"bad dimension", "[render]\nwidth = -5\n", "render.width"},
		{"bad format", "[logging]\nformat = \"xml\"\n", "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "vizcast.toml")
			if err := os.WriteFile(configPath, []byte(tc.payload), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(configPath)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q should mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestRequestBuildsFromRenderSection(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Type = "spectrum"
	cfg.Render.Position = "left"

	req, err := cfg.Request()
	if err != nil {
		t.Fatalf("Request returned error: %v", err)
	}
	if req.Kind != viz.KindSpectrum {
		t.Fatalf("unexpected kind: %v", req.Kind)
	}
	if req.Position.Anchor != viz.AnchorLeft {
		t.Fatalf("unexpected anchor: %v", req.Position.Anchor)
	}
	if req.Width != 1280 || req.Height != 180 || req.Margin != 50 {
		t.Fatalf("unexpected geometry: %+v", req)
	}
}

func TestCreateSampleParsesAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Render.Color != "viridis" {
		t.Fatalf("unexpected sample color: %q", cfg.Render.Color)
	}
}

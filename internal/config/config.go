package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"vizcast/internal/viz"
)

//go:embed sample_config.toml
var sampleConfig string

// Render contains the default visualization settings applied when the
// corresponding command-line flags are omitted.
type Render struct {
	Type          string  `toml:"type"`
	Color         string  `toml:"color"`
	Position      string  `toml:"position"`
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	Margin        int     `toml:"margin"`
	FrameWidth    int     `toml:"frame_width"`
	FrameHeight   int     `toml:"frame_height"`
	DurationLimit float64 `toml:"duration_limit"`
}

// Engine contains the external tool configuration.
type Engine struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
	Workers int    `toml:"workers"`
}

// Output contains output placement and conversion ledger settings.
type Output struct {
	Dir            string `toml:"dir"`
	HistoryEnabled bool   `toml:"history_enabled"`
	HistoryPath    string `toml:"history_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vizcast.
type Config struct {
	Render  Render  `toml:"render"`
	Engine  Engine  `toml:"engine"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vizcast/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vizcast.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Request builds a visualization request from the render defaults. Flag
// handling overlays individual fields afterwards.
func (c *Config) Request() (viz.Request, error) {
	kind, err := viz.ParseKind(c.Render.Type)
	if err != nil {
		return viz.Request{}, fmt.Errorf("render.type: %w", err)
	}
	position, err := viz.ParsePosition(c.Render.Position)
	if err != nil {
		return viz.Request{}, fmt.Errorf("render.position: %w", err)
	}
	return viz.Request{
		Kind:          kind,
		ColorScheme:   c.Render.Color,
		Position:      position,
		Width:         c.Render.Width,
		Height:        c.Render.Height,
		Margin:        c.Render.Margin,
		DurationLimit: c.Render.DurationLimit,
		FrameWidth:    c.Render.FrameWidth,
		FrameHeight:   c.Render.FrameHeight,
	}, nil
}

// FFmpegBinary returns the ffmpeg executable used for rendering.
func (c *Config) FFmpegBinary() string {
	return c.Engine.FFmpeg
}

// FFprobeBinary returns the ffprobe executable used for media inspection.
func (c *Config) FFprobeBinary() string {
	return c.Engine.FFprobe
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

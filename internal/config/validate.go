package config

import (
	"errors"
	"fmt"

	"vizcast/internal/palette"
	"vizcast/internal/viz"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRender() error {
	if _, err := viz.ParseKind(c.Render.Type); err != nil {
		return fmt.Errorf("render.type: %w", err)
	}
	if _, err := palette.Resolve(c.Render.Color); err != nil {
		return fmt.Errorf("render.color: %w", err)
	}
	if _, err := viz.ParsePosition(c.Render.Position); err != nil {
		return fmt.Errorf("render.position: %w", err)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New("render.width and render.height must be positive")
	}
	if c.Render.Margin < 0 {
		return errors.New("render.margin must not be negative")
	}
	if c.Render.FrameWidth <= 0 || c.Render.FrameHeight <= 0 {
		return errors.New("render.frame_width and render.frame_height must be positive")
	}
	if c.Render.DurationLimit < 0 {
		return errors.New("render.duration_limit must not be negative")
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.Workers <= 0 {
		return errors.New("engine.workers must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

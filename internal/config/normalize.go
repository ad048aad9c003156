package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeEngine()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Dir) != "" {
		if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
			return fmt.Errorf("output.dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Output.HistoryPath) == "" {
		c.Output.HistoryPath = defaultHistoryPath
	}
	if c.Output.HistoryPath, err = expandPath(c.Output.HistoryPath); err != nil {
		return fmt.Errorf("output.history_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeEngine() {
	c.Engine.FFmpeg = strings.TrimSpace(c.Engine.FFmpeg)
	if c.Engine.FFmpeg == "" {
		c.Engine.FFmpeg = defaultFFmpegBinary
	}
	c.Engine.FFprobe = strings.TrimSpace(c.Engine.FFprobe)
	if c.Engine.FFprobe == "" {
		c.Engine.FFprobe = defaultFFprobeBinary
	}
	if c.Engine.Workers <= 0 {
		c.Engine.Workers = defaultEngineWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateHighlights(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DatasetRoot) == "" {
		return fmt.Errorf("paths.dataset_root is required. Set %s or edit the config file (create with 'tubeclip config init')", envDatasetRoot)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.HTTPTimeoutSeconds < 0 {
		return errors.New("youtube.http_timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateHighlights() error {
	if c.Highlights.Marker == "" {
		return errors.New("highlights.marker must be set")
	}
	if c.Highlights.WindowSeconds < 0 {
		return errors.New("highlights.window_seconds must be zero or positive")
	}
	if c.Highlights.Workers < 1 {
		return errors.New("highlights.workers must be at least 1")
	}
	if strings.ContainsAny(c.Highlights.ClipExtension, `/\`) {
		return fmt.Errorf("highlights.clip_extension %q must not contain path separators", c.Highlights.ClipExtension)
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	if c.Audio.Channels <= 0 {
		return errors.New("audio.channels must be positive")
	}
	if c.Audio.SegmentSeconds <= 0 {
		return errors.New("audio.segment_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be zero or positive")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeFFmpeg()
	c.normalizeHighlights()
	c.normalizeCategories()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DatasetRoot) == "" {
		c.Paths.DatasetRoot = envOr(envDatasetRoot, defaultDatasetRoot)
	}
	fields := []struct {
		key   string
		value *string
		def   string
	}{
		{key: "paths.dataset_root", value: &c.Paths.DatasetRoot, def: defaultDatasetRoot},
		{key: "paths.state_dir", value: &c.Paths.StateDir, def: defaultStateDir},
		{key: "paths.log_dir", value: &c.Paths.LogDir, def: defaultLogDir},
		{key: "paths.export_dir", value: &c.Paths.ExportDir, def: defaultExportDir},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.def
		}
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeYouTube() {
	c.YouTube.YtdlpPath = strings.TrimSpace(c.YouTube.YtdlpPath)
	if c.YouTube.YtdlpPath == "" {
		c.YouTube.YtdlpPath = envOr(envYtdlpPath, defaultYtdlpPath)
	}
	c.YouTube.CaptionLanguage = strings.TrimSpace(c.YouTube.CaptionLanguage)
	if c.YouTube.CaptionLanguage == "" {
		c.YouTube.CaptionLanguage = defaultCaptionLanguage
	}
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.FFmpegPath = trimOr(c.FFmpeg.FFmpegPath, defaultFFmpegPath)
	c.FFmpeg.FFprobePath = trimOr(c.FFmpeg.FFprobePath, defaultFFprobePath)
	c.FFmpeg.VideoCodec = trimOr(c.FFmpeg.VideoCodec, defaultVideoCodec)
	c.FFmpeg.AudioCodec = trimOr(c.FFmpeg.AudioCodec, defaultAudioCodec)
}

func (c *Config) normalizeHighlights() {
	c.Highlights.Marker = strings.TrimSpace(c.Highlights.Marker)
	c.Highlights.ClipExtension = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Highlights.ClipExtension)), ".")
	if c.Highlights.ClipExtension == "" {
		c.Highlights.ClipExtension = defaultClipExtension
	}
	if c.Highlights.Workers == 0 {
		c.Highlights.Workers = defaultWorkers
	}
}

func (c *Config) normalizeCategories() {
	c.Categories.Podcast = trimOr(c.Categories.Podcast, defaultPodcastCategory)
	c.Categories.Interview = trimOr(c.Categories.Interview, defaultInterviewCategory)
	c.Categories.Speech = trimOr(c.Categories.Speech, defaultSpeechCategory)
	c.Categories.Music = trimOr(c.Categories.Music, defaultMusicCategory)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = strings.ToLower(envOr(envLogLevel, defaultLogLevel))
	}
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func trimOr(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tubeclip/internal/acquire"
	"tubeclip/internal/clips"
	"tubeclip/internal/config"
	"tubeclip/internal/highlights"
	"tubeclip/internal/history"
	"tubeclip/internal/logging"
	"tubeclip/internal/media/audio"
	"tubeclip/internal/youtube"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	envFileFlag  *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, envFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		envFileFlag:  envFileFlag,
	}
}

func flagValue(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func (c *commandContext) loadEnv() error {
	return config.LoadEnvFile(flagValue(c.envFileFlag))
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg, flagValue(c.logLevelFlag))
		if err != nil {
			c.loggerErr = fmt.Errorf("init logging: %w", err)
			return
		}
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, cfg.Paths.LogDir, "*.log*", logging.LogFileName)
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// withSession opens the history store and an acquisition session wired to
// the real collaborators, runs fn, and releases everything.
func (c *commandContext) withSession(fn func(*acquire.Session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	session, err := acquire.Open(cfg, store, buildDeps(cfg, logger), logger)
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session)
}

func buildDeps(cfg *config.Config, logger *slog.Logger) acquire.Deps {
	tools := audio.NewTools(audio.Options{
		FFmpeg:     cfg.FFmpeg.FFmpegPath,
		FFprobe:    cfg.FFmpeg.FFprobePath,
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
	}, logger)
	fetcher := youtube.NewCaptionFetcher(youtube.CaptionOptions{
		YtdlpPath: cfg.YouTube.YtdlpPath,
		Language:  cfg.YouTube.CaptionLanguage,
		EmbedURLs: cfg.YouTube.EmbedURLs,
	}, logger)
	client := youtube.NewClient(youtube.Options{
		HTTPTimeout: cfg.HTTPTimeout(),
		EmbedURLs:   cfg.YouTube.EmbedURLs,
	}, tools, logger)
	writer := clips.NewWriter(clips.WriterOptions{
		FFmpeg:     cfg.FFmpeg.FFmpegPath,
		VideoCodec: cfg.FFmpeg.VideoCodec,
		AudioCodec: cfg.FFmpeg.AudioCodec,
		Workers:    cfg.Highlights.Workers,
	}, logger)
	return acquire.Deps{
		Captions:    fetcher,
		Downloader:  client,
		Highlighter: newPipeline(cfg, fetcher, writer, logger),
		Audio:       tools,
	}
}

func newPipeline(cfg *config.Config, fetcher highlights.CaptionSource, writer highlights.ClipWriter, logger *slog.Logger) *highlights.Pipeline {
	return highlights.New(fetcher, writer, highlights.Options{
		Marker:    cfg.Highlights.Marker,
		Window:    cfg.Highlights.WindowSeconds,
		Extension: cfg.Highlights.ClipExtension,
		FFprobe:   cfg.FFmpeg.FFprobePath,
	}, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

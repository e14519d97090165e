package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"tubeclip/internal/logging"
	"tubeclip/internal/media/ffprobe"
)

const (
	defaultFFmpeg     = "ffmpeg"
	defaultSampleRate = 44100
	defaultChannels   = 2
)

// ErrEmptySource indicates ffprobe reported no usable duration.
var ErrEmptySource = errors.New("audio source has no duration")

type commandRunner func(ctx context.Context, name string, args ...string) error

type probeFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Options configures ffmpeg/ffprobe invocation and the WAV layout.
type Options struct {
	FFmpeg     string
	FFprobe    string
	SampleRate int
	Channels   int
}

// Tools wraps the ffmpeg operations used for audio preparation.
type Tools struct {
	opts   Options
	logger *slog.Logger
	run    commandRunner
	probe  probeFunc
}

// NewTools constructs audio tools with defaults applied.
func NewTools(opts Options, logger *slog.Logger) *Tools {
	if strings.TrimSpace(opts.FFmpeg) == "" {
		opts.FFmpeg = defaultFFmpeg
	}
	if strings.TrimSpace(opts.FFprobe) == "" {
		opts.FFprobe = ffprobe.DefaultBinary
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = defaultSampleRate
	}
	if opts.Channels <= 0 {
		opts.Channels = defaultChannels
	}
	return &Tools{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "audio"),
		run:    runFFmpeg,
		probe:  ffprobe.Inspect,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (t *Tools) WithCommandRunner(r commandRunner) {
	if t != nil && r != nil {
		t.run = r
	}
}

// WithProbe overrides the ffprobe inspection used by Segment.
func (t *Tools) WithProbe(fn func(context.Context, string, string) (ffprobe.Result, error)) {
	if t != nil && fn != nil {
		t.probe = fn
	}
}

// ConvertToWAV decodes any container ffmpeg understands into 16-bit PCM WAV.
// Video streams are dropped. The destination is written atomically.
func (t *Tools) ConvertToWAV(ctx context.Context, src, dst string) error {
	if err := requireFile(src); err != nil {
		return fmt.Errorf("convert to wav: %w", err)
	}
	if strings.TrimSpace(dst) == "" {
		return fmt.Errorf("convert to wav: destination is required")
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("convert to wav: create directory: %w", err)
	}

	tmp := dst + ".part"
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", src,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(t.opts.SampleRate),
		"-ac", strconv.Itoa(t.opts.Channels),
		"-f", "wav",
		tmp,
	}
	if err := t.run(ctx, t.opts.FFmpeg, args...); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("convert to wav: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("convert to wav: finalize: %w", err)
	}
	t.logger.Debug("converted to wav",
		logging.String("source", src),
		logging.String("path", dst),
	)
	return nil
}

// Segment slices src into clipSeconds-long WAV files named
// <name>_<n>.wav inside outDir, numbered from 1. The last segment holds the
// remainder. Written paths are returned in order.
func (t *Tools) Segment(ctx context.Context, src, outDir string, clipSeconds int, name string) ([]string, error) {
	if clipSeconds <= 0 {
		return nil, fmt.Errorf("segment audio: clip length must be positive, got %d", clipSeconds)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("segment audio: clip name is required")
	}
	if err := requireFile(src); err != nil {
		return nil, fmt.Errorf("segment audio: %w", err)
	}
	probe, err := t.probe(ctx, t.opts.FFprobe, src)
	if err != nil {
		return nil, fmt.Errorf("segment audio: %w", err)
	}
	spans := Plan(probe.DurationMillis(), int64(clipSeconds)*1000)
	if len(spans) == 0 {
		return nil, fmt.Errorf("segment audio %s: %w", src, ErrEmptySource)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("segment audio: create directory: %w", err)
	}

	paths := make([]string, 0, len(spans))
	for _, span := range spans {
		dst := filepath.Join(outDir, fmt.Sprintf("%s_%d.wav", name, span.Index))
		args := []string{
			"-y", "-hide_banner", "-loglevel", "error",
			"-ss", formatMillis(span.StartMs),
			"-t", formatMillis(span.DurationMs()),
			"-i", src,
			"-vn",
			"-acodec", "pcm_s16le",
			dst,
		}
		if err := t.run(ctx, t.opts.FFmpeg, args...); err != nil {
			return paths, fmt.Errorf("segment audio: clip %d: %w", span.Index, err)
		}
		paths = append(paths, dst)
	}
	t.logger.Info("audio segmented",
		logging.String("source", src),
		logging.Int("segment_count", len(paths)),
		logging.Int("clip_seconds", clipSeconds),
	)
	return paths, nil
}

func requireFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("source path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("source not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %s is a directory", path)
	}
	return nil
}

func formatMillis(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 3, 64)
}

func runFFmpeg(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

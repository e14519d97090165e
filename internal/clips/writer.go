package clips

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

	"golang.org/x/sync/errgroup"

	"tubeclip/internal/logging"
)

const (
	defaultFFmpeg     = "ffmpeg"
	defaultVideoCodec = "libx264"
	defaultAudioCodec = "aac"
)

// ErrNoSource indicates the writer was given no video to cut from.
var ErrNoSource = errors.New("clip source video is required")

type commandRunner func(ctx context.Context, name string, args ...string) error

// Source names the media a clip is cut from. AudioPath is optional; when
// set, its audio replaces the video's own track.
type Source struct {
	VideoPath string
	AudioPath string
}

// WriterOptions configures ffmpeg invocation for clip rendering.
type WriterOptions struct {
	FFmpeg     string
	VideoCodec string
	AudioCodec string
	Workers    int
}

// Writer renders clip descriptors to files.
type Writer struct {
	opts   WriterOptions
	logger *slog.Logger
	run    commandRunner
}

// NewWriter constructs a clip writer.
func NewWriter(opts WriterOptions, logger *slog.Logger) *Writer {
	if strings.TrimSpace(opts.FFmpeg) == "" {
		opts.FFmpeg = defaultFFmpeg
	}
	if strings.TrimSpace(opts.VideoCodec) == "" {
		opts.VideoCodec = defaultVideoCodec
	}
	if strings.TrimSpace(opts.AudioCodec) == "" {
		opts.AudioCodec = defaultAudioCodec
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Writer{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "clips"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (w *Writer) WithCommandRunner(r commandRunner) {
	if w != nil && r != nil {
		w.run = r
	}
}

// Write renders every non-empty descriptor and returns the written paths in
// descriptor order. Zero-length windows are skipped. The first ffmpeg
// failure cancels the remaining work.
func (w *Writer) Write(ctx context.Context, src Source, clips []Descriptor) ([]string, error) {
	if w == nil {
		return nil, fmt.Errorf("clip writer not initialized")
	}
	if strings.TrimSpace(src.VideoPath) == "" {
		return nil, ErrNoSource
	}
	if _, err := os.Stat(src.VideoPath); err != nil {
		return nil, fmt.Errorf("clip source not found: %w", err)
	}
	if src.AudioPath != "" {
		if _, err := os.Stat(src.AudioPath); err != nil {
			return nil, fmt.Errorf("clip audio not found: %w", err)
		}
	}

	written := make([]string, len(clips))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.Workers)
	for i, clip := range clips {
		if clip.Empty() {
			w.logger.Debug("skipping empty clip window",
				logging.Int("clip_index", clip.Index),
				logging.Float64("start_seconds", clip.StartSeconds),
				logging.Float64("end_seconds", clip.EndSeconds),
			)
			continue
		}
		g.Go(func() error {
			if err := os.MkdirAll(filepath.Dir(clip.OutputPath), 0o755); err != nil {
				return fmt.Errorf("create clip directory: %w", err)
			}
			args := w.buildArgs(src, clip)
			if err := w.run(gctx, w.opts.FFmpeg, args...); err != nil {
				return fmt.Errorf("render clip %d: %w", clip.Index, err)
			}
			w.logger.Debug("clip written",
				logging.Int("clip_index", clip.Index),
				logging.String("path", clip.OutputPath),
			)
			written[i] = clip.OutputPath
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(written))
	for _, p := range written {
		if p != "" {
			paths = append(paths, p)
		}
	}
	w.logger.Info("clips rendered",
		logging.Int("clip_count", len(paths)),
		logging.Int("skipped", len(clips)-len(paths)),
	)
	return paths, nil
}

func (w *Writer) buildArgs(src Source, clip Descriptor) []string {
	start := formatSeconds(clip.StartSeconds)
	end := formatSeconds(clip.EndSeconds)
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-ss", start, "-to", end, "-i", src.VideoPath,
	}
	if src.AudioPath != "" {
		args = append(args,
			"-ss", start, "-to", end, "-i", src.AudioPath,
			"-map", "0:v:0", "-map", "1:a:0",
			"-c:v", w.opts.VideoCodec,
			"-c:a", w.opts.AudioCodec,
		)
	} else {
		args = append(args, "-c:v", w.opts.VideoCodec, "-an")
	}
	return append(args, clip.OutputPath)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"tubeclip/internal/logging"
)

const (
	defaultYtdlp           = "yt-dlp"
	defaultCaptionLanguage = "en"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// CaptionOptions configures the yt-dlp caption fetcher.
type CaptionOptions struct {
	YtdlpPath string
	Language  string
	EmbedURLs bool
}

// CaptionFetcher retrieves auto-generated or uploaded captions as SRT text.
type CaptionFetcher struct {
	opts   CaptionOptions
	logger *slog.Logger
	run    commandRunner
}

// NewCaptionFetcher constructs a caption fetcher backed by yt-dlp.
func NewCaptionFetcher(opts CaptionOptions, logger *slog.Logger) *CaptionFetcher {
	if strings.TrimSpace(opts.YtdlpPath) == "" {
		opts.YtdlpPath = defaultYtdlp
	}
	if strings.TrimSpace(opts.Language) == "" {
		opts.Language = defaultCaptionLanguage
	}
	return &CaptionFetcher{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "captions"),
		run:    runYtdlp,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (f *CaptionFetcher) WithCommandRunner(r commandRunner) {
	if f != nil && r != nil {
		f.run = r
	}
}

// Fetch downloads the caption track for the video and returns its SRT
// payload. ErrCaptionsUnavailable is returned when the video has no track in
// the configured language.
func (f *CaptionFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := NormalizeURL(rawURL, f.opts.EmbedURLs)
	if err != nil {
		return "", err
	}
	workDir, err := os.MkdirTemp("", "tubeclip-captions-")
	if err != nil {
		return "", fmt.Errorf("create caption workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	args := []string{
		"--skip-download",
		"--write-auto-subs",
		"--write-subs",
		"--sub-langs", f.opts.Language,
		"--convert-subs", "srt",
		"--no-warnings",
		"-o", filepath.Join(workDir, "%(id)s.%(ext)s"),
		target,
	}
	f.logger.Debug("fetching captions",
		logging.String("url", target),
		logging.String("language", f.opts.Language),
	)
	if err := f.run(ctx, f.opts.YtdlpPath, args...); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrYtdlpNotInstalled, f.opts.YtdlpPath)
		}
		return "", fmt.Errorf("fetch captions: %w", err)
	}

	path, err := pickCaptionFile(workDir, f.opts.Language)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read captions: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", fmt.Errorf("%w: empty caption track", ErrCaptionsUnavailable)
	}
	return string(data), nil
}

// pickCaptionFile prefers a track tagged with the requested language and
// otherwise falls back to the first SRT file by name.
func pickCaptionFile(dir, language string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.srt"))
	if err != nil {
		return "", fmt.Errorf("list captions: %w", err)
	}
	if len(matches) == 0 {
		return "", ErrCaptionsUnavailable
	}
	sort.Strings(matches)
	marker := "." + language + "."
	for _, m := range matches {
		if strings.Contains(filepath.Base(m), marker) {
			return m, nil
		}
	}
	return matches[0], nil
}

func runYtdlp(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

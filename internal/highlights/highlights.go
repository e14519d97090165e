package highlights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tubeclip/internal/captions"
	"tubeclip/internal/clips"
	"tubeclip/internal/logging"
	"tubeclip/internal/media/ffprobe"
	"tubeclip/internal/services"
	"tubeclip/internal/youtube"
)

const stageName = "highlights"

// ErrNoSource is returned when a request names neither a URL nor a caption file.
var ErrNoSource = errors.New("highlights request needs a url or caption file")

// CaptionSource supplies raw SRT text for a video URL.
type CaptionSource interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ClipWriter renders clip windows to files.
type ClipWriter interface {
	Write(ctx context.Context, src clips.Source, descriptors []clips.Descriptor) ([]string, error)
}

type probeFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Options configures the workflow defaults.
type Options struct {
	Marker    string
	Window    float64
	Extension string
	FFprobe   string
}

// Request describes one highlights run. CaptionFile takes precedence over
// URL when both are set. A positive DurationSeconds skips probing. A nil
// Window uses the pipeline default; an explicit zero yields zero-length clips.
type Request struct {
	URL             string
	CaptionFile     string
	VideoPath       string
	AudioPath       string
	ExportDir       string
	Window          *float64
	DurationSeconds float64
}

// Result reports what a run found and wrote.
type Result struct {
	Cues            []captions.Entry   `json:"cues"`
	Clips           []clips.Descriptor `json:"clips"`
	Written         []string           `json:"written,omitempty"`
	DurationSeconds float64            `json:"duration_seconds"`
}

// Pipeline wires the collaborators together.
type Pipeline struct {
	captions CaptionSource
	writer   ClipWriter
	opts     Options
	probe    probeFunc
	logger   *slog.Logger
}

// New constructs a pipeline. fetcher may be nil when every request carries a
// caption file; writer may be nil when only Plan is used.
func New(fetcher CaptionSource, writer ClipWriter, opts Options, logger *slog.Logger) *Pipeline {
	if strings.TrimSpace(opts.Marker) == "" {
		opts.Marker = captions.LaughterMarker
	}
	if strings.TrimSpace(opts.Extension) == "" {
		opts.Extension = clips.DefaultExtension
	}
	if strings.TrimSpace(opts.FFprobe) == "" {
		opts.FFprobe = ffprobe.DefaultBinary
	}
	return &Pipeline{
		captions: fetcher,
		writer:   writer,
		opts:     opts,
		probe:    ffprobe.Inspect,
		logger:   logging.NewComponentLogger(logger, stageName),
	}
}

// WithProbe overrides the ffprobe invocation, for tests.
func (p *Pipeline) WithProbe(fn func(ctx context.Context, binary, path string) (ffprobe.Result, error)) {
	if p != nil && fn != nil {
		p.probe = fn
	}
}

// Plan performs every step except rendering.
func (p *Pipeline) Plan(ctx context.Context, req Request) (Result, error) {
	ctx = services.WithStage(ctx, stageName)
	logger := logging.WithContext(ctx, p.logger)

	entries, err := p.loadCaptions(ctx, req)
	if err != nil {
		return Result{}, err
	}
	cues := captions.FindMarker(entries, p.opts.Marker)
	logger.Info("captions scanned",
		logging.Int("caption_count", len(entries)),
		logging.Int("cue_count", len(cues)),
		logging.String("marker", p.opts.Marker),
	)

	result := Result{Cues: cues}
	if len(cues) == 0 {
		return result, nil
	}

	duration, err := p.duration(ctx, req)
	if err != nil {
		return Result{}, err
	}
	result.DurationSeconds = duration

	window := p.opts.Window
	if req.Window != nil {
		window = *req.Window
	}
	result.Clips = clips.Extract(cues, duration, window, req.ExportDir, p.opts.Extension)
	logger.Debug("clip windows computed",
		logging.Int("clip_count", len(result.Clips)),
		logging.Float64("window_seconds", window),
		logging.Float64("duration_seconds", duration),
	)
	return result, nil
}

// Run plans the clips and renders them from the request's video.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	if p.writer == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, stageName, "render", "no clip writer configured", nil)
	}
	if strings.TrimSpace(req.VideoPath) == "" {
		return Result{}, services.Wrap(services.ErrValidation, stageName, "render", "video path is required", clips.ErrNoSource)
	}
	result, err := p.Plan(ctx, req)
	if err != nil {
		return Result{}, err
	}
	if len(result.Clips) == 0 {
		p.logger.Info("no marker cues; nothing to render", logging.String("url", req.URL))
		return result, nil
	}

	written, err := p.writer.Write(ctx, clips.Source{VideoPath: req.VideoPath, AudioPath: req.AudioPath}, result.Clips)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, stageName, "render", "clip rendering failed", err)
	}
	result.Written = written
	return result, nil
}

func (p *Pipeline) loadCaptions(ctx context.Context, req Request) ([]captions.Entry, error) {
	var (
		entries []captions.Entry
		err     error
	)
	switch {
	case strings.TrimSpace(req.CaptionFile) != "":
		entries, err = captions.ParseFile(req.CaptionFile)
	case strings.TrimSpace(req.URL) != "":
		if p.captions == nil {
			return nil, services.Wrap(services.ErrConfiguration, stageName, "captions", "no caption source configured", nil)
		}
		var raw string
		raw, err = p.captions.Fetch(ctx, req.URL)
		if err != nil {
			return nil, classifyFetchError(err)
		}
		entries, err = captions.Parse(raw)
	default:
		return nil, services.Wrap(services.ErrValidation, stageName, "captions", "", ErrNoSource)
	}
	if err != nil {
		if errors.Is(err, captions.ErrMalformedCaption) {
			return nil, services.Wrap(services.ErrValidation, stageName, "parse", "malformed captions", err)
		}
		return nil, fmt.Errorf("load captions: %w", err)
	}
	return entries, nil
}

func (p *Pipeline) duration(ctx context.Context, req Request) (float64, error) {
	if req.DurationSeconds > 0 {
		return req.DurationSeconds, nil
	}
	if strings.TrimSpace(req.VideoPath) == "" {
		return 0, services.Wrap(services.ErrValidation, stageName, "probe", "video path or duration is required", nil)
	}
	probed, err := p.probe(ctx, p.opts.FFprobe, req.VideoPath)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, stageName, "probe", "ffprobe failed", err)
	}
	return probed.DurationSeconds(), nil
}

func classifyFetchError(err error) error {
	switch {
	case errors.Is(err, youtube.ErrCaptionsUnavailable):
		return services.Wrap(services.ErrNotFound, stageName, "captions", "no caption track", err)
	case errors.Is(err, youtube.ErrYtdlpNotInstalled):
		return services.Wrap(services.ErrConfiguration, stageName, "captions", "yt-dlp missing", err)
	case errors.Is(err, youtube.ErrInvalidURL):
		return services.Wrap(services.ErrValidation, stageName, "captions", "", err)
	default:
		return services.Wrap(services.ErrExternalTool, stageName, "captions", "caption download failed", err)
	}
}

package acquire

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"tubeclip/internal/highlights"
	"tubeclip/internal/history"
	"tubeclip/internal/services"
	"tubeclip/internal/textutil"
	"tubeclip/internal/youtube"
)

// LaughterOptions configures a highlights run. An empty VideoPath downloads
// the video into ExportDir first; an empty ExportDir uses
// <paths.export_dir>/<video id>.
type LaughterOptions struct {
	VideoPath string
	AudioPath string
	ExportDir string
	Window    *float64
}

// Laughter renders clips around every laughter cue of url.
func (s *Session) Laughter(ctx context.Context, url string, opts LaughterOptions) (highlights.Result, error) {
	const stage = "highlights"
	ctx = s.context(ctx, stage)
	if s.deps.Highlighter == nil {
		return highlights.Result{}, services.Wrap(services.ErrConfiguration, stage, "laughter", "no highlighter configured", nil)
	}

	var info youtube.VideoInfo
	exportDir := strings.TrimSpace(opts.ExportDir)
	if exportDir == "" || strings.TrimSpace(opts.VideoPath) == "" {
		var err error
		info, err = s.info(ctx, stage, url)
		if err != nil {
			return highlights.Result{}, err
		}
	}
	if exportDir == "" {
		exportDir = filepath.Join(s.cfg.Paths.ExportDir, textutil.SanitizeToken(info.ID))
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return highlights.Result{}, services.Wrap(services.ErrConfiguration, stage, "export", "", err)
	}

	videoPath := opts.VideoPath
	if strings.TrimSpace(videoPath) == "" {
		entry := history.Entry{SourceURL: url, VideoID: info.ID, Title: info.Title, Kind: history.KindVideo}
		path, err := s.track(ctx, entry, func() (string, error) {
			path, err := s.deps.Downloader.DownloadVideo(ctx, url, exportDir, "source")
			if err != nil {
				return "", classifyDownloadError(stage, "video", err)
			}
			return path, nil
		})
		if err != nil {
			return highlights.Result{}, err
		}
		videoPath = path
	}

	var result highlights.Result
	entry := history.Entry{SourceURL: url, VideoID: info.ID, Title: info.Title, Kind: history.KindClips, OutputPath: exportDir}
	_, err := s.track(ctx, entry, func() (string, error) {
		var runErr error
		result, runErr = s.deps.Highlighter.Run(ctx, highlights.Request{
			URL:       url,
			VideoPath: videoPath,
			AudioPath: opts.AudioPath,
			ExportDir: exportDir,
			Window:    opts.Window,
		})
		return exportDir, runErr
	})
	return result, err
}

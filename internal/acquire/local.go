package acquire

import (
	"context"
	"strings"

	"tubeclip/internal/history"
	"tubeclip/internal/services"
	"tubeclip/internal/textutil"
)

// Convert turns any audio or video container into a WAV file.
func (s *Session) Convert(ctx context.Context, src, dst string) (string, error) {
	const stage = "convert"
	ctx = s.context(ctx, stage)
	if s.deps.Audio == nil {
		return "", services.Wrap(services.ErrConfiguration, stage, "convert", "no audio tools configured", nil)
	}
	entry := history.Entry{SourceURL: src, Kind: history.KindConvert, OutputPath: dst}
	return s.track(ctx, entry, func() (string, error) {
		if err := s.deps.Audio.ConvertToWAV(ctx, src, dst); err != nil {
			return "", services.Wrap(services.ErrExternalTool, stage, "ffmpeg", "", err)
		}
		return dst, nil
	})
}

// Segment splits a WAV into fixed-length clips named <name>_<n>.wav.
func (s *Session) Segment(ctx context.Context, src, outDir string, clipSeconds int, name string) ([]string, error) {
	const stage = "segment"
	ctx = s.context(ctx, stage)
	if s.deps.Audio == nil {
		return nil, services.Wrap(services.ErrConfiguration, stage, "segment", "no audio tools configured", nil)
	}
	if clipSeconds <= 0 {
		clipSeconds = s.cfg.Audio.SegmentSeconds
	}
	name = textutil.SanitizeSegment(strings.TrimSpace(name))
	if name == "" {
		return nil, services.Wrap(services.ErrValidation, stage, "segment", "clip name is required", nil)
	}

	var paths []string
	entry := history.Entry{SourceURL: src, Kind: history.KindSegment, OutputPath: outDir}
	_, err := s.track(ctx, entry, func() (string, error) {
		var runErr error
		paths, runErr = s.deps.Audio.Segment(ctx, src, outDir, clipSeconds, name)
		if runErr != nil {
			return "", services.Wrap(services.ErrExternalTool, stage, "ffmpeg", "", runErr)
		}
		return outDir, nil
	})
	return paths, err
}

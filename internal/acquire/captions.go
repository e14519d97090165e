package acquire

import (
	"context"
	"errors"

	"tubeclip/internal/captions"
	"tubeclip/internal/history"
	"tubeclip/internal/services"
	"tubeclip/internal/youtube"
)

// Captions downloads and parses the caption track of url.
func (s *Session) Captions(ctx context.Context, url string) ([]captions.Entry, error) {
	const stage = "captions"
	ctx = s.context(ctx, stage)
	if s.deps.Captions == nil {
		return nil, services.Wrap(services.ErrConfiguration, stage, "fetch", "no caption source configured", nil)
	}
	videoID, _ := youtube.VideoID(url)

	var entries []captions.Entry
	entry := history.Entry{SourceURL: url, VideoID: videoID, Kind: history.KindCaptions}
	_, err := s.track(ctx, entry, func() (string, error) {
		raw, err := s.deps.Captions.Fetch(ctx, url)
		if err != nil {
			if errors.Is(err, youtube.ErrCaptionsUnavailable) {
				return "", services.Wrap(services.ErrNotFound, stage, "fetch", "no caption track", err)
			}
			return "", services.Wrap(services.ErrExternalTool, stage, "fetch", "", err)
		}
		entries, err = captions.Parse(raw)
		if err != nil {
			return "", services.Wrap(services.ErrValidation, stage, "parse", "", err)
		}
		return "", nil
	})
	return entries, err
}

package youtube

import (
	"errors"
	"fmt"

	yt "github.com/kkdai/youtube/v2"
)

// Sentinel errors for download operations.
var (
	ErrInvalidURL          = errors.New("youtube: invalid URL")
	ErrYtdlpNotInstalled   = errors.New("youtube: yt-dlp not installed")
	ErrCaptionsUnavailable = errors.New("youtube: captions not available")
	ErrNoStream            = errors.New("youtube: no matching stream")
	ErrRestricted          = errors.New("youtube: video is restricted")
)

// classifyError maps client library failures onto the package sentinels so
// callers only need errors.Is against this package.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, yt.ErrLoginRequired),
		errors.Is(err, yt.ErrVideoPrivate),
		errors.Is(err, yt.ErrNotPlayableInEmbed):
		return fmt.Errorf("%s: %w: %w", op, ErrRestricted, err)
	case errors.Is(err, yt.ErrInvalidCharactersInVideoID),
		errors.Is(err, yt.ErrVideoIDMinLength):
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidURL, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package youtube

import (
	"fmt"
	"strings"

	yt "github.com/kkdai/youtube/v2"
)

// selectVideoFormat picks the highest resolution mp4 stream that carries no
// audio, breaking ties on bitrate.
func selectVideoFormat(formats yt.FormatList) (*yt.Format, error) {
	var best *yt.Format
	for i := range formats {
		f := &formats[i]
		if !strings.HasPrefix(f.MimeType, "video/mp4") || f.AudioChannels > 0 {
			continue
		}
		if best == nil || f.Height > best.Height || (f.Height == best.Height && f.Bitrate > best.Bitrate) {
			best = f
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no video-only mp4 stream", ErrNoStream)
	}
	return best, nil
}

// selectAudioFormat picks the first mp4 audio-only stream in listing order.
func selectAudioFormat(formats yt.FormatList) (*yt.Format, error) {
	for i := range formats {
		f := &formats[i]
		if strings.HasPrefix(f.MimeType, "audio/mp4") && f.Width == 0 && f.Height == 0 {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: no mp4 audio stream", ErrNoStream)
}

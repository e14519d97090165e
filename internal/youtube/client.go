package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	yt "github.com/kkdai/youtube/v2"

	"tubeclip/internal/logging"
)

const (
	defaultVideoName = "video"
	defaultAudioName = "audio"
)

// VideoInfo summarizes the metadata of a single video.
type VideoInfo struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Duration    time.Duration `json:"duration"`
	HasCaptions bool          `json:"has_captions"`
}

// WAVConverter turns a downloaded audio container into a WAV file.
type WAVConverter interface {
	ConvertToWAV(ctx context.Context, src, dst string) error
}

// Options configures the stream client.
type Options struct {
	HTTPTimeout time.Duration
	EmbedURLs   bool
}

// Client downloads audio and video streams for a single video at a time.
type Client struct {
	yt        *yt.Client
	converter WAVConverter
	embed     bool
	logger    *slog.Logger
}

// NewClient constructs a stream client. The converter is used to turn
// downloaded audio into WAV.
func NewClient(opts Options, converter WAVConverter, logger *slog.Logger) *Client {
	httpClient := &http.Client{}
	if opts.HTTPTimeout > 0 {
		httpClient.Timeout = opts.HTTPTimeout
	}
	return &Client{
		yt:        &yt.Client{HTTPClient: httpClient},
		converter: converter,
		embed:     opts.EmbedURLs,
		logger:    logging.NewComponentLogger(logger, "youtube"),
	}
}

// Info fetches video metadata.
func (c *Client) Info(ctx context.Context, rawURL string) (VideoInfo, error) {
	video, err := c.video(ctx, rawURL)
	if err != nil {
		return VideoInfo{}, err
	}
	return VideoInfo{
		ID:          video.ID,
		Title:       video.Title,
		Author:      video.Author,
		Duration:    video.Duration,
		HasCaptions: len(video.CaptionTracks) > 0,
	}, nil
}

// DownloadVideo saves the highest resolution video-only mp4 stream to
// <dir>/<name>.mp4 and returns the written path. The result carries no
// audio track.
func (c *Client) DownloadVideo(ctx context.Context, rawURL, dir, name string) (string, error) {
	video, err := c.video(ctx, rawURL)
	if err != nil {
		return "", err
	}
	format, err := selectVideoFormat(video.Formats)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		name = defaultVideoName
	}
	dest := filepath.Join(dir, name+".mp4")
	c.logger.Info("downloading video stream",
		logging.String("video_id", video.ID),
		logging.String("quality", format.QualityLabel),
		logging.String("path", dest),
	)
	if err := c.saveStream(ctx, video, format, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// DownloadAudio saves the first mp4 audio-only stream and converts it to
// <dir>/<name>.wav, returning the written path.
func (c *Client) DownloadAudio(ctx context.Context, rawURL, dir, name string) (string, error) {
	if c.converter == nil {
		return "", fmt.Errorf("download audio: no WAV converter configured")
	}
	video, err := c.video(ctx, rawURL)
	if err != nil {
		return "", err
	}
	format, err := selectAudioFormat(video.Formats)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		name = defaultAudioName
	}
	dest := filepath.Join(dir, name+".wav")
	staging := filepath.Join(dir, "."+name+".m4a.part")
	defer os.Remove(staging)

	c.logger.Info("downloading audio stream",
		logging.String("video_id", video.ID),
		logging.Int("bitrate", format.Bitrate),
		logging.String("path", dest),
	)
	if err := c.saveStream(ctx, video, format, staging); err != nil {
		return "", err
	}
	if err := c.converter.ConvertToWAV(ctx, staging, dest); err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	return dest, nil
}

func (c *Client) video(ctx context.Context, rawURL string) (*yt.Video, error) {
	target, err := NormalizeURL(rawURL, c.embed)
	if err != nil {
		return nil, err
	}
	video, err := c.yt.GetVideoContext(ctx, target)
	if err != nil {
		return nil, classifyError("fetch video", err)
	}
	return video, nil
}

func (c *Client) saveStream(ctx context.Context, video *yt.Video, format *yt.Format, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}
	stream, size, err := c.yt.GetStreamContext(ctx, video, format)
	if err != nil {
		return classifyError("open stream", err)
	}
	defer stream.Close()

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	written, copyErr := io.Copy(out, stream)
	closeErr := out.Close()
	if copyErr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("download stream: %w", copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, closeErr)
	}
	if size > 0 && written != size {
		_ = os.Remove(tmp)
		return fmt.Errorf("download stream: short read %d of %d bytes", written, size)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize %s: %w", dest, err)
	}
	c.logger.Debug("stream saved", logging.String("path", dest), logging.Int64("bytes", written))
	return nil
}

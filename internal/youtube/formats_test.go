package youtube

import (
	"errors"
	"fmt"
	"testing"

	yt "github.com/kkdai/youtube/v2"
)

func TestSelectVideoFormatPrefersHighestVideoOnly(t *testing.T) {
	formats := yt.FormatList{
		{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Height: 360, AudioChannels: 2},
		{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, Height: 1080, Bitrate: 4000},
		{ItagNo: 299, MimeType: `video/mp4; codecs="avc1.64002a"`, Height: 1080, Bitrate: 6000},
		{ItagNo: 248, MimeType: `video/webm; codecs="vp9"`, Height: 2160},
		{ItagNo: 136, MimeType: `video/mp4; codecs="avc1.4d401f"`, Height: 720},
	}
	got, err := selectVideoFormat(formats)
	if err != nil {
		t.Fatalf("selectVideoFormat: %v", err)
	}
	if got.ItagNo != 299 {
		t.Fatalf("expected itag 299, got %d", got.ItagNo)
	}
}

func TestSelectAudioFormatTakesFirstMP4(t *testing.T) {
	formats := yt.FormatList{
		{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, AudioChannels: 2},
		{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2, Bitrate: 128000},
		{ItagNo: 139, MimeType: `audio/mp4; codecs="mp4a.40.5"`, AudioChannels: 2, Bitrate: 48000},
	}
	got, err := selectAudioFormat(formats)
	if err != nil {
		t.Fatalf("selectAudioFormat: %v", err)
	}
	if got.ItagNo != 140 {
		t.Fatalf("expected itag 140, got %d", got.ItagNo)
	}
}

func TestSelectFormatsReportNoStream(t *testing.T) {
	formats := yt.FormatList{{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`}}
	if _, err := selectVideoFormat(formats); !errors.Is(err, ErrNoStream) {
		t.Fatalf("expected ErrNoStream, got %v", err)
	}
	if _, err := selectAudioFormat(nil); !errors.Is(err, ErrNoStream) {
		t.Fatalf("expected ErrNoStream, got %v", err)
	}
}

func TestClassifyError(t *testing.T) {
	if err := classifyError("fetch", fmt.Errorf("wrapped: %w", yt.ErrVideoPrivate)); !errors.Is(err, ErrRestricted) {
		t.Fatalf("expected ErrRestricted, got %v", err)
	}
	if err := classifyError("fetch", yt.ErrInvalidCharactersInVideoID); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	other := errors.New("network down")
	if err := classifyError("fetch", other); !errors.Is(err, other) || errors.Is(err, ErrRestricted) {
		t.Fatalf("unexpected classification %v", err)
	}
	if classifyError("fetch", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

package highlights_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tubeclip/internal/clips"
	"tubeclip/internal/highlights"
	"tubeclip/internal/logging"
	"tubeclip/internal/media/ffprobe"
	"tubeclip/internal/services"
	"tubeclip/internal/youtube"
)

const laughterSRT = `1
00:00:05,000 --> 00:00:07,000
Hello there

2
00:00:10,000 --> 00:00:12,000
[Laughter]

3
00:01:00,000 --> 00:01:02,000
[Laughter]
`

type fakeFetcher struct {
	raw  string
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.raw, f.err
}

type fakeWriter struct {
	src   clips.Source
	clips []clips.Descriptor
	err   error
}

func (w *fakeWriter) Write(_ context.Context, src clips.Source, descriptors []clips.Descriptor) ([]string, error) {
	w.src = src
	w.clips = descriptors
	if w.err != nil {
		return nil, w.err
	}
	paths := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		paths = append(paths, d.OutputPath)
	}
	return paths, nil
}

func probeReturning(duration string, calls *int) func(context.Context, string, string) (ffprobe.Result, error) {
	return func(context.Context, string, string) (ffprobe.Result, error) {
		if calls != nil {
			*calls++
		}
		return ffprobe.Decode([]byte(`{"format":{"duration":"` + duration + `"}}`))
	}
}

func TestRunRendersLaughterClips(t *testing.T) {
	fetcher := &fakeFetcher{raw: laughterSRT}
	writer := &fakeWriter{}
	p := highlights.New(fetcher, writer, highlights.Options{Window: 5}, logging.NewNop())
	p.WithProbe(probeReturning("62.5", nil))

	export := t.TempDir()
	result, err := p.Run(context.Background(), highlights.Request{
		URL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		VideoPath: "/videos/video.mp4",
		AudioPath: "/videos/audio.wav",
		ExportDir: export,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(result.Cues))
	}
	if result.DurationSeconds != 62.5 {
		t.Fatalf("duration = %v, want 62.5", result.DurationSeconds)
	}
	want := []clips.Descriptor{
		{Index: 1, StartSeconds: 5, EndSeconds: 15, OutputPath: filepath.Join(export, "clip_1.mp4")},
		{Index: 2, StartSeconds: 55, EndSeconds: 62.5, OutputPath: filepath.Join(export, "clip_2.mp4")},
	}
	if len(result.Clips) != len(want) {
		t.Fatalf("expected %d clips, got %d", len(want), len(result.Clips))
	}
	for i := range want {
		if result.Clips[i] != want[i] {
			t.Fatalf("clip %d = %#v, want %#v", i, result.Clips[i], want[i])
		}
	}
	if len(result.Written) != 2 {
		t.Fatalf("expected 2 written paths, got %v", result.Written)
	}
	if writer.src.VideoPath != "/videos/video.mp4" || writer.src.AudioPath != "/videos/audio.wav" {
		t.Fatalf("unexpected writer source: %#v", writer.src)
	}
	if len(fetcher.urls) != 1 {
		t.Fatalf("expected one fetch, got %d", len(fetcher.urls))
	}
}

func TestRequestWindowOverridesDefault(t *testing.T) {
	p := highlights.New(&fakeFetcher{raw: laughterSRT}, nil, highlights.Options{Window: 30}, nil)
	result, err := p.Plan(context.Background(), highlights.Request{
		URL:             "https://youtu.be/dQw4w9WgXcQ",
		ExportDir:       "out",
		Window:          windowOf(2),
		DurationSeconds: 100,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if result.Clips[0].StartSeconds != 8 || result.Clips[0].EndSeconds != 12 {
		t.Fatalf("unexpected first clip: %#v", result.Clips[0])
	}
}

func TestPlanUsesCaptionFileAndSkipsProbeWithDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captions.srt")
	if err := os.WriteFile(path, []byte(laughterSRT), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}
	calls := 0
	p := highlights.New(nil, nil, highlights.Options{Window: 30, Extension: "mkv"}, nil)
	p.WithProbe(probeReturning("10", &calls))

	result, err := p.Plan(context.Background(), highlights.Request{
		CaptionFile:     path,
		ExportDir:       "out",
		DurationSeconds: 3600,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected probe to be skipped, got %d calls", calls)
	}
	if result.Clips[1].OutputPath != filepath.Join("out", "clip_2.mkv") {
		t.Fatalf("unexpected output path %q", result.Clips[1].OutputPath)
	}
	if result.Clips[1].EndSeconds != 90 {
		t.Fatalf("unexpected second clip: %#v", result.Clips[1])
	}
}

func TestRunWithoutCuesSkipsWriter(t *testing.T) {
	writer := &fakeWriter{}
	p := highlights.New(&fakeFetcher{raw: "1\n00:00:01,000 --> 00:00:02,000\nhi\n"}, writer, highlights.Options{}, nil)
	result, err := p.Run(context.Background(), highlights.Request{URL: "https://youtu.be/dQw4w9WgXcQ", VideoPath: "/v.mp4"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Clips) != 0 || writer.clips != nil {
		t.Fatalf("expected no clips and no writer call, got %#v", result)
	}
}

func TestCaptionsUnavailableIsTyped(t *testing.T) {
	fetcher := &fakeFetcher{err: youtube.ErrCaptionsUnavailable}
	p := highlights.New(fetcher, &fakeWriter{}, highlights.Options{}, nil)
	_, err := p.Run(context.Background(), highlights.Request{URL: "https://youtu.be/dQw4w9WgXcQ", VideoPath: "/v.mp4"})
	if !errors.Is(err, youtube.ErrCaptionsUnavailable) {
		t.Fatalf("expected ErrCaptionsUnavailable, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
}

func TestMalformedCaptionsAreValidationErrors(t *testing.T) {
	fetcher := &fakeFetcher{raw: "1\nnot a time range\ntext\n"}
	p := highlights.New(fetcher, &fakeWriter{}, highlights.Options{}, nil)
	_, err := p.Plan(context.Background(), highlights.Request{URL: "https://youtu.be/dQw4w9WgXcQ", DurationSeconds: 10})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestRunRequiresVideo(t *testing.T) {
	p := highlights.New(&fakeFetcher{raw: laughterSRT}, &fakeWriter{}, highlights.Options{}, nil)
	if _, err := p.Run(context.Background(), highlights.Request{URL: "https://youtu.be/dQw4w9WgXcQ"}); !errors.Is(err, clips.ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestPlanRequiresSource(t *testing.T) {
	p := highlights.New(nil, nil, highlights.Options{}, nil)
	if _, err := p.Plan(context.Background(), highlights.Request{}); !errors.Is(err, highlights.ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestWriterFailureIsExternalTool(t *testing.T) {
	writer := &fakeWriter{err: errors.New("ffmpeg exploded")}
	p := highlights.New(&fakeFetcher{raw: laughterSRT}, writer, highlights.Options{}, nil)
	_, err := p.Run(context.Background(), highlights.Request{
		URL:             "https://youtu.be/dQw4w9WgXcQ",
		VideoPath:       "/v.mp4",
		DurationSeconds: 100,
	})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func windowOf(v float64) *float64 { return &v }

func TestExplicitZeroWindowCollapsesClips(t *testing.T) {
	p := highlights.New(&fakeFetcher{raw: laughterSRT}, nil, highlights.Options{Window: 30}, nil)
	result, err := p.Plan(context.Background(), highlights.Request{
		URL:             "https://youtu.be/dQw4w9WgXcQ",
		ExportDir:       "out",
		Window:          windowOf(0),
		DurationSeconds: 100,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(result.Clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(result.Clips))
	}
	for i, anchor := range []float64{10, 60} {
		clip := result.Clips[i]
		if clip.StartSeconds != anchor || clip.EndSeconds != anchor || !clip.Empty() {
			t.Fatalf("clip %d: expected [%v, %v], got %#v", i+1, anchor, anchor, clip)
		}
	}
}

func TestNilWindowUsesDefault(t *testing.T) {
	p := highlights.New(&fakeFetcher{raw: laughterSRT}, nil, highlights.Options{Window: 4}, nil)
	result, err := p.Plan(context.Background(), highlights.Request{
		URL:             "https://youtu.be/dQw4w9WgXcQ",
		DurationSeconds: 100,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if result.Clips[0].StartSeconds != 6 || result.Clips[0].EndSeconds != 14 {
		t.Fatalf("unexpected first clip: %#v", result.Clips[0])
	}
}

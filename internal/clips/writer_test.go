package clips

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"tubeclip/internal/logging"
)

type recordedCall struct {
	name string
	args []string
}

type recorder struct {
	mu    sync.Mutex
	calls []recordedCall
	fail  error
}

func (r *recorder) run(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{name: name, args: append([]string(nil), args...)})
	if r.fail != nil {
		return r.fail
	}
	return os.WriteFile(args[len(args)-1], []byte("clip"), 0o644)
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestWriterRendersNonEmptyClips(t *testing.T) {
	dir := t.TempDir()
	video := writeSource(t, dir, "video.mp4")
	rec := &recorder{}
	w := NewWriter(WriterOptions{Workers: 2}, logging.NewNop())
	w.WithCommandRunner(rec.run)

	exportDir := filepath.Join(dir, "clips")
	descs := []Descriptor{
		{Index: 0, StartSeconds: 5, EndSeconds: 11, OutputPath: filepath.Join(exportDir, "clip_0.mp4")},
		{Index: 1, StartSeconds: 0, EndSeconds: 0, OutputPath: filepath.Join(exportDir, "clip_1.mp4")},
		{Index: 2, StartSeconds: 20, EndSeconds: 30, OutputPath: filepath.Join(exportDir, "clip_2.mp4")},
	}
	paths, err := w.Write(context.Background(), Source{VideoPath: video}, descs)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := []string{descs[0].OutputPath, descs[2].OutputPath}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("expected 2 ffmpeg calls, got %d", len(rec.calls))
	}
	for _, call := range rec.calls {
		if call.name != "ffmpeg" {
			t.Fatalf("unexpected binary %q", call.name)
		}
		if !slices.Contains(call.args, "libx264") || !slices.Contains(call.args, "-an") {
			t.Fatalf("unexpected args %v", call.args)
		}
	}
	for _, p := range want {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected clip %s: %v", p, err)
		}
	}
}

func TestWriterMuxesSeparateAudio(t *testing.T) {
	dir := t.TempDir()
	video := writeSource(t, dir, "video.mp4")
	audio := writeSource(t, dir, "audio.wav")
	rec := &recorder{}
	w := NewWriter(WriterOptions{FFmpeg: "/opt/ffmpeg"}, logging.NewNop())
	w.WithCommandRunner(rec.run)

	descs := []Descriptor{{Index: 0, StartSeconds: 1.5, EndSeconds: 4, OutputPath: filepath.Join(dir, "clip_0.mp4")}}
	if _, err := w.Write(context.Background(), Source{VideoPath: video, AudioPath: audio}, descs); err != nil {
		t.Fatalf("Write: %v", err)
	}
	call := rec.calls[0]
	if call.name != "/opt/ffmpeg" {
		t.Fatalf("unexpected binary %q", call.name)
	}
	wantPrefix := []string{"-y", "-hide_banner", "-loglevel", "error", "-ss", "1.500", "-to", "4.000", "-i", video, "-ss", "1.500", "-to", "4.000", "-i", audio}
	if !slices.Equal(call.args[:len(wantPrefix)], wantPrefix) {
		t.Fatalf("unexpected args %v", call.args)
	}
	if !slices.Contains(call.args, "1:a:0") || slices.Contains(call.args, "-an") {
		t.Fatalf("expected audio mapping, got %v", call.args)
	}
}

func TestWriterPropagatesFailure(t *testing.T) {
	dir := t.TempDir()
	video := writeSource(t, dir, "video.mp4")
	boom := errors.New("boom")
	rec := &recorder{fail: boom}
	w := NewWriter(WriterOptions{}, logging.NewNop())
	w.WithCommandRunner(rec.run)

	descs := []Descriptor{{Index: 0, StartSeconds: 0, EndSeconds: 2, OutputPath: filepath.Join(dir, "clip_0.mp4")}}
	if _, err := w.Write(context.Background(), Source{VideoPath: video}, descs); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestWriterRequiresSource(t *testing.T) {
	w := NewWriter(WriterOptions{}, logging.NewNop())
	if _, err := w.Write(context.Background(), Source{}, nil); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if _, err := w.Write(context.Background(), Source{VideoPath: filepath.Join(t.TempDir(), "missing.mp4")}, nil); err == nil {
		t.Fatal("expected error for missing source")
	}
}

package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"tubeclip/internal/logging"
	"tubeclip/internal/media/ffprobe"
)

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func touchLast(_ context.Context, _ string, args ...string) error {
	return os.WriteFile(args[len(args)-1], []byte("wav"), 0o644)
}

func TestConvertToWAV(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "episode.mkv")
	dst := filepath.Join(dir, "out", "audio.wav")

	var got []string
	tools := NewTools(Options{}, logging.NewNop())
	tools.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if name != "ffmpeg" {
			t.Fatalf("unexpected binary %q", name)
		}
		got = args
		return touchLast(ctx, name, args...)
	})
	if err := tools.ConvertToWAV(context.Background(), src, dst); err != nil {
		t.Fatalf("ConvertToWAV: %v", err)
	}
	for _, pair := range [][2]string{{"-acodec", "pcm_s16le"}, {"-ar", "44100"}, {"-ac", "2"}} {
		i := slices.Index(got, pair[0])
		if i < 0 || got[i+1] != pair[1] {
			t.Fatalf("expected %s %s in %v", pair[0], pair[1], got)
		}
	}
	if !slices.Contains(got, "-vn") {
		t.Fatalf("expected -vn in %v", got)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("expected output: %v", err)
	}
	if _, err := os.Stat(dst + ".part"); !os.IsNotExist(err) {
		t.Fatalf("expected staging file removed, got %v", err)
	}
}

func TestConvertToWAVFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "episode.mp4")
	dst := filepath.Join(dir, "audio.wav")
	boom := errors.New("boom")

	tools := NewTools(Options{}, logging.NewNop())
	tools.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		_ = touchLast(ctx, name, args...)
		return boom
	})
	if err := tools.ConvertToWAV(context.Background(), src, dst); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := os.Stat(dst + ".part"); !os.IsNotExist(err) {
		t.Fatalf("expected staging file removed, got %v", err)
	}
}

func TestConvertToWAVMissingSource(t *testing.T) {
	tools := NewTools(Options{}, logging.NewNop())
	if err := tools.ConvertToWAV(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"), "out.wav"); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestSegment(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "speech.wav")
	outDir := filepath.Join(dir, "clips")

	var calls [][]string
	tools := NewTools(Options{}, logging.NewNop())
	tools.WithProbe(func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{Format: ffprobe.Format{Duration: "25.5"}}, nil
	})
	tools.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		calls = append(calls, args)
		return touchLast(ctx, name, args...)
	})

	paths, err := tools.Segment(context.Background(), src, outDir, 10, "speaker")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	want := []string{
		filepath.Join(outDir, "speaker_1.wav"),
		filepath.Join(outDir, "speaker_2.wav"),
		filepath.Join(outDir, "speaker_3.wav"),
	}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	last := calls[2]
	if i := slices.Index(last, "-ss"); last[i+1] != "20.000" {
		t.Fatalf("unexpected start in %v", last)
	}
	if i := slices.Index(last, "-t"); last[i+1] != "5.500" {
		t.Fatalf("unexpected duration in %v", last)
	}
}

func TestSegmentRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "speech.wav")
	tools := NewTools(Options{}, logging.NewNop())
	tools.WithProbe(func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{}, nil
	})

	if _, err := tools.Segment(context.Background(), src, dir, 0, "x"); err == nil {
		t.Fatal("expected error for zero clip length")
	}
	if _, err := tools.Segment(context.Background(), src, dir, 5, " "); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := tools.Segment(context.Background(), src, dir, 5, "x"); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
}

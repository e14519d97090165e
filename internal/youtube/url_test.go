package youtube

import (
	"errors"
	"testing"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "watch", in: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch with offset", in: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", want: "dQw4w9WgXcQ"},
		{name: "short link", in: "https://youtu.be/dQw4w9WgXcQ?t=10", want: "dQw4w9WgXcQ"},
		{name: "embed", in: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "shorts", in: "youtube.com/shorts/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "bare id", in: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := VideoID(tc.in)
			if err != nil {
				t.Fatalf("VideoID(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("VideoID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestVideoIDRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=short",
		"ftp://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/channel/UC123",
	} {
		if _, err := VideoID(in); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("VideoID(%q) expected ErrInvalidURL, got %v", in, err)
		}
	}
}

func TestNormalizeURLStripsOffset(t *testing.T) {
	got, err := NormalizeURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=120s", false)
	if err != nil {
		t.Fatalf("NormalizeURL: %v", err)
	}
	if got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestNormalizeURLEmbed(t *testing.T) {
	got, err := NormalizeURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=5", true)
	if err != nil {
		t.Fatalf("NormalizeURL: %v", err)
	}
	if got != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestNormalizeURLRejectsForeignHost(t *testing.T) {
	if _, err := NormalizeURL("https://vimeo.com/12345", false); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

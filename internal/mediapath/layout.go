package mediapath

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tubeclip/internal/textutil"
)

// File names inside a category directory.
const (
	AudioFile        = "audio.wav"
	VideoFile        = "video.mp4"
	TranscriptFile   = "transcript.csv"
	InstrumentalFile = "instrumental.wav"
)

// Templates holds the per-category base directories, relative to the
// dataset root unless absolute.
type Templates struct {
	Podcast   string
	Interview string
	Speech    string
	Music     string
}

// DefaultTemplates returns the stock directory taxonomy.
func DefaultTemplates() Templates {
	return Templates{
		Podcast:   filepath.Join("podcasts", "JRE"),
		Interview: "interviews",
		Speech:    "custom_tts",
		Music:     "music",
	}
}

// Layout is the resolved set of paths for one item. File fields that do not
// apply to the category are empty.
type Layout struct {
	Kind         Kind   `json:"kind"`
	BaseDir      string `json:"base_dir"`
	SubDir       string `json:"sub_dir"`
	Audio        string `json:"audio"`
	Video        string `json:"video,omitempty"`
	Transcript   string `json:"transcript,omitempty"`
	Instrumental string `json:"instrumental,omitempty"`
}

// HasVideo reports whether the category stores video.
func (l Layout) HasVideo() bool { return l.Video != "" }

// HasTranscript reports whether the category stores a transcript.
func (l Layout) HasTranscript() bool { return l.Transcript != "" }

// HasInstrumental reports whether the category stores an instrumental track.
func (l Layout) HasInstrumental() bool { return l.Instrumental != "" }

// Resolve maps a category to its directory layout under root. It performs
// no I/O.
func Resolve(root string, tmpl Templates, c Category) (Layout, error) {
	if strings.TrimSpace(root) == "" {
		return Layout{}, fmt.Errorf("%w: dataset root is required", ErrInvalidCategory)
	}
	defaults := DefaultTemplates()

	var (
		base     string
		segments []string
		err      error
	)
	switch c.Kind {
	case KindPodcast:
		if c.Episode <= 0 {
			return Layout{}, fmt.Errorf("%w: podcast episode must be positive, got %d", ErrInvalidCategory, c.Episode)
		}
		base = pick(tmpl.Podcast, defaults.Podcast)
		segments = []string{strconv.Itoa(c.Episode)}
	case KindInterview:
		base = pick(tmpl.Interview, defaults.Interview)
		segments, err = sanitizeAll("interview", c.Subject, c.Name)
	case KindSpeech:
		// the speaker directory is itself the item directory
		var speaker []string
		speaker, err = sanitizeAll("speaker", c.Speaker)
		if err == nil {
			base = filepath.Join(pick(tmpl.Speech, defaults.Speech), speaker[0])
		}
	case KindMusic:
		base = pick(tmpl.Music, defaults.Music)
		segments, err = sanitizeAll("song", c.Song)
	default:
		return Layout{}, fmt.Errorf("%w: unknown category %q", ErrInvalidCategory, c.Kind)
	}
	if err != nil {
		return Layout{}, err
	}

	if !filepath.IsAbs(base) {
		base = filepath.Join(root, base)
	}
	sub := filepath.Join(append([]string{base}, segments...)...)
	layout := Layout{
		Kind:    c.Kind,
		BaseDir: filepath.Clean(base),
		SubDir:  sub,
		Audio:   filepath.Join(sub, AudioFile),
	}
	switch c.Kind {
	case KindPodcast, KindInterview:
		layout.Video = filepath.Join(sub, VideoFile)
		layout.Transcript = filepath.Join(sub, TranscriptFile)
	case KindMusic:
		layout.Instrumental = filepath.Join(sub, InstrumentalFile)
	}
	return layout, nil
}

// EnsureDir creates the layout's item directory. It is idempotent.
func EnsureDir(l Layout) error {
	if strings.TrimSpace(l.SubDir) == "" {
		return fmt.Errorf("ensure dir: layout has no directory")
	}
	if err := os.MkdirAll(l.SubDir, 0o755); err != nil {
		return fmt.Errorf("ensure dir %s: %w", l.SubDir, err)
	}
	return nil
}

func pick(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func sanitizeAll(field string, values ...string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		cleaned := textutil.SanitizeSegment(v)
		if cleaned == "" {
			return nil, fmt.Errorf("%w: %s component %q is empty or unsafe", ErrInvalidCategory, field, v)
		}
		out = append(out, cleaned)
	}
	return out, nil
}

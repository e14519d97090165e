package clips

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"tubeclip/internal/captions"
)

// DefaultExtension is the container used when no extension is configured.
const DefaultExtension = "mp4"

// Descriptor is one clip window to cut from the source video.
type Descriptor struct {
	Index        int     `json:"index"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	OutputPath   string  `json:"output_path"`
}

// Duration reports the length of the window in seconds.
func (d Descriptor) Duration() float64 {
	return d.EndSeconds - d.StartSeconds
}

// Empty reports whether the window has no positive length.
func (d Descriptor) Empty() bool {
	return d.EndSeconds <= d.StartSeconds
}

// Extract builds one descriptor per cue, indexed from 1, centred on the cue start and
// extended by window seconds on each side. Windows are clamped to
// [0, sourceDuration]. A cue whose start cannot be parsed is anchored at 0.
// Overlapping windows are kept as-is.
func Extract(cues []captions.Entry, sourceDuration, window float64, exportDir, ext string) []Descriptor {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = DefaultExtension
	}
	if window < 0 {
		window = 0
	}
	if sourceDuration < 0 {
		sourceDuration = 0
	}

	out := make([]Descriptor, 0, len(cues))
	for i, cue := range cues {
		index := i + 1
		anchor, err := cue.StartSeconds()
		if err != nil {
			anchor = 0
		}
		start, end := clampWindow(anchor, window, sourceDuration)
		out = append(out, Descriptor{
			Index:        index,
			StartSeconds: start,
			EndSeconds:   end,
			OutputPath:   filepath.Join(exportDir, fmt.Sprintf("clip_%d.%s", index, ext)),
		})
	}
	return out
}

func clampWindow(anchor, window, duration float64) (float64, float64) {
	start := math.Max(0, anchor-window)
	end := math.Max(0, math.Min(duration, anchor+window))
	if start > end {
		start = end
	}
	return start, end
}

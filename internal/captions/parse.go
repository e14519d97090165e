package captions

import (
	"fmt"
	"os"
	"strings"
)

// Entry is a single timed caption. End is the midpoint of the source window,
// so it never exceeds the end time found in the payload.
type Entry struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

// StartSeconds returns the entry start as fractional seconds.
func (e Entry) StartSeconds() (float64, error) {
	return Seconds(e.Start)
}

// Block columns, in the order they appear inside a caption block.
const (
	slotIndex = iota
	slotTimestamp
	slotText
)

const timeRangeSeparator = "-->"

// Parse reads an SRT payload into caption entries in source order.
//
// Blocks are separated by blank lines and hold an index line, a time range and
// one text line. The index is discarded, text is kept verbatim, and each end
// time is moved to start + (end-start)/2. Lines past the text slot are
// ignored. Any time range that cannot be read fails the whole parse.
func Parse(raw string) ([]Entry, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	entries := make([]Entry, 0, len(lines)/4+1)

	slot := slotIndex
	var pending *Entry
	flush := func() {
		if pending != nil {
			entries = append(entries, *pending)
			pending = nil
		}
	}

	for i, line := range lines {
		if line == "" {
			flush()
			slot = slotIndex
			continue
		}
		switch slot {
		case slotIndex:
		case slotTimestamp:
			start, end, err := parseTimeRange(line)
			if err != nil {
				return nil, &MalformedCaptionError{Line: i + 1, Value: line, Err: err}
			}
			pending = &Entry{Start: start, End: end}
		case slotText:
			if pending != nil {
				pending.Text = line
			}
		}
		slot++
	}
	flush()
	return entries, nil
}

// ParseFile reads and parses an SRT file.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read captions: %w", err)
	}
	return Parse(string(data))
}

func parseTimeRange(line string) (string, string, error) {
	parts := strings.Split(line, timeRangeSeparator)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected one %q separator", timeRangeSeparator)
	}
	startMs, err := timestampMillis(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("start: %w", err)
	}
	endMs, err := timestampMillis(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("end: %w", err)
	}
	if endMs < startMs {
		return "", "", fmt.Errorf("end precedes start")
	}
	half := (endMs - startMs) / 2
	return formatMillis(startMs), formatMillis(startMs + half), nil
}

package history

import (
	"fmt"
	"strings"
	"time"
)

// Status tracks the lifecycle of a ledger entry.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{StatusRunning, StatusCompleted, StatusFailed}

// AllStatuses returns every status in display order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus maps user input to a Status.
func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, s := range allStatuses {
		if s == normalized {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", value)
}

// Kind names the artifact an entry produced.
type Kind string

const (
	KindAudio    Kind = "audio"
	KindVideo    Kind = "video"
	KindCaptions Kind = "captions"
	KindClips    Kind = "clips"
	KindConvert  Kind = "convert"
	KindSegment  Kind = "segment"
)

// Entry is one recorded acquisition step.
type Entry struct {
	ID           int64
	RunID        string
	SourceURL    string
	VideoID      string
	Title        string
	Category     string
	Kind         Kind
	OutputPath   string
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Elapsed reports how long the entry ran; zero while running.
func (e Entry) Elapsed() time.Duration {
	if e.Status == StatusRunning || e.UpdatedAt.Before(e.CreatedAt) {
		return 0
	}
	return e.UpdatedAt.Sub(e.CreatedAt)
}

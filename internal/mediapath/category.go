package mediapath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCategory reports a category whose key fields are missing or
// unusable as path components.
var ErrInvalidCategory = errors.New("invalid media category")

// Kind identifies the content category.
type Kind string

const (
	KindPodcast   Kind = "podcast"
	KindInterview Kind = "interview"
	KindSpeech    Kind = "speech"
	KindMusic     Kind = "music"
)

// Kinds lists every supported category in display order.
func Kinds() []Kind {
	return []Kind{KindPodcast, KindInterview, KindSpeech, KindMusic}
}

// ParseKind resolves a user supplied category name.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindPodcast, "jre":
		return KindPodcast, nil
	case KindInterview:
		return KindInterview, nil
	case KindSpeech, "tts", "speech_dataset":
		return KindSpeech, nil
	case KindMusic:
		return KindMusic, nil
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidCategory, value)
}

// Category carries the key fields for one item. Only the fields relevant to
// Kind are read; use the constructors to build one.
type Category struct {
	Kind    Kind   `json:"kind"`
	Episode int    `json:"episode,omitempty"`
	Subject string `json:"subject,omitempty"`
	Name    string `json:"name,omitempty"`
	Speaker string `json:"speaker,omitempty"`
	Song    string `json:"song,omitempty"`
}

// Podcast returns the category for a numbered podcast episode.
func Podcast(episode int) Category {
	return Category{Kind: KindPodcast, Episode: episode}
}

// Interview returns the category for a named interview with a subject.
func Interview(subject, name string) Category {
	return Category{Kind: KindInterview, Subject: subject, Name: name}
}

// Speech returns the category for a speech-dataset speaker.
func Speech(speaker string) Category {
	return Category{Kind: KindSpeech, Speaker: speaker}
}

// Music returns the category for a music track.
func Music(song string) Category {
	return Category{Kind: KindMusic, Song: song}
}

// Key returns a short human readable identifier such as "podcast/1554".
func (c Category) Key() string {
	switch c.Kind {
	case KindPodcast:
		return string(c.Kind) + "/" + strconv.Itoa(c.Episode)
	case KindInterview:
		return string(c.Kind) + "/" + c.Subject + "/" + c.Name
	case KindSpeech:
		return string(c.Kind) + "/" + c.Speaker
	case KindMusic:
		return string(c.Kind) + "/" + c.Song
	}
	return string(c.Kind)
}

package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const videoIDLength = 11

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"music.youtube.com":        true,
	"youtube-nocookie.com":     true,
	"www.youtube-nocookie.com": true,
	"youtu.be":                 true,
}

// NormalizeURL strips playback offsets from a video URL. When embed is true
// the URL is rewritten to the /embed/<id> form, which some videos require
// before their streams can be resolved.
func NormalizeURL(raw string, embed bool) (string, error) {
	parsed, err := parseVideoURL(raw)
	if err != nil {
		return "", err
	}
	if embed {
		id, err := idFromURL(parsed)
		if err != nil {
			return "", err
		}
		return "https://www.youtube.com/embed/" + id, nil
	}
	query := parsed.Query()
	query.Del("t")
	query.Del("start")
	parsed.RawQuery = query.Encode()
	parsed.Fragment = ""
	return parsed.String(), nil
}

// VideoID extracts the 11 character video identifier from watch, embed,
// shorts, live and youtu.be links. A bare identifier is returned unchanged.
func VideoID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if videoIDPattern.MatchString(trimmed) {
		return trimmed, nil
	}
	parsed, err := parseVideoURL(trimmed)
	if err != nil {
		return "", err
	}
	return idFromURL(parsed)
}

func parseVideoURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}
	if !youtubeHosts[strings.ToLower(parsed.Hostname())] {
		return nil, fmt.Errorf("%w: unsupported host %q", ErrInvalidURL, parsed.Host)
	}
	return parsed, nil
}

func idFromURL(parsed *url.URL) (string, error) {
	var candidate string
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	switch {
	case strings.EqualFold(parsed.Hostname(), "youtu.be"):
		candidate = segments[0]
	case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "live" || segments[0] == "v"):
		candidate = segments[1]
	default:
		candidate = parsed.Query().Get("v")
	}
	if len(candidate) != videoIDLength || !videoIDPattern.MatchString(candidate) {
		return "", fmt.Errorf("%w: no video id in %q", ErrInvalidURL, parsed.String())
	}
	return candidate, nil
}

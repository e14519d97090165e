// Package ffprobe wraps ffprobe's JSON output for the handful of facts the
// media tools need: container duration, stream counts and the audio layout.
//
// Inspect shells out to ffprobe; the Result helpers are pure and tolerate
// missing or malformed numeric fields by reporting zero.
package ffprobe

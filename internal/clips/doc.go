// Package clips turns caption cues into clip windows and renders them with
// ffmpeg.
//
// Extract is pure: it derives one Descriptor per cue, clamped to the source
// duration, without touching the filesystem. Writer consumes descriptors and
// cuts each window out of the source video, optionally muxing a separately
// downloaded audio track.
package clips

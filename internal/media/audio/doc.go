// Package audio converts media to PCM WAV and slices WAV files into
// fixed-length segments.
//
// The work is delegated to ffmpeg; ffprobe supplies the source length used
// to plan segment boundaries. Plan is pure so the boundary arithmetic can be
// checked without touching media files.
package audio

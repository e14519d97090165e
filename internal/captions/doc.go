// Package captions turns raw SRT caption payloads into timed caption entries
// and locates marker cues such as "[Laughter]".
//
// Parsing is a pure function of the payload text: every block contributes one
// CaptionEntry whose end time is pulled back to the midpoint of the displayed
// window, biasing downstream cues toward the moment the caption appeared. A
// time range that cannot be read aborts the parse with a MalformedCaptionError;
// callers never receive a partial table.
//
// Marker matching is exact. Text is stored verbatim, so "[laughter]" or
// "[Laughter] " are ordinary captions.
package captions

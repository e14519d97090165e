package audio

// Span is one segment window in milliseconds. Index starts at 1.
type Span struct {
	Index   int
	StartMs int64
	EndMs   int64
}

// DurationMs returns the span length.
func (s Span) DurationMs() int64 {
	return s.EndMs - s.StartMs
}

// Plan splits totalMs into consecutive spans of clipMs. The final span is
// shorter when totalMs is not a multiple of clipMs. Non-positive inputs
// produce no spans.
func Plan(totalMs, clipMs int64) []Span {
	if totalMs <= 0 || clipMs <= 0 {
		return nil
	}
	spans := make([]Span, 0, (totalMs+clipMs-1)/clipMs)
	for start := int64(0); start < totalMs; start += clipMs {
		spans = append(spans, Span{
			Index:   int(start/clipMs) + 1,
			StartMs: start,
			EndMs:   min(start+clipMs, totalMs),
		})
	}
	return spans
}

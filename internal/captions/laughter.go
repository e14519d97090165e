package captions

// LaughterMarker is the token auto-generated captions use for audience laughter.
const LaughterMarker = "[Laughter]"

// FindLaughter returns the entries whose text is exactly LaughterMarker.
func FindLaughter(entries []Entry) []Entry {
	return FindMarker(entries, LaughterMarker)
}

// FindMarker returns, in order, the entries whose text is byte-identical to
// marker. No trimming or case folding is applied.
func FindMarker(entries []Entry, marker string) []Entry {
	matches := make([]Entry, 0)
	for _, entry := range entries {
		if entry.Text == marker {
			matches = append(matches, entry)
		}
	}
	return matches
}

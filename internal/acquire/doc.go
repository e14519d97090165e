// Package acquire runs the user-facing acquisition flows: category downloads,
// music parts, speech samples, laughter highlights, and local conversion or
// segmentation.
//
// A Session holds the exclusive run lock, the run ID stamped on every log line
// and ledger entry, and the collaborators that touch the network and spawn
// processes. Every step is recorded in the history ledger as running, then
// completed or failed.
package acquire

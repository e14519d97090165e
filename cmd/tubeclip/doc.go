// Command tubeclip downloads YouTube media into a category-keyed dataset
// tree, extracts captions, cuts laughter highlight clips, and prepares WAV
// audio for speech and music datasets.
//
// Every acquisition runs under an exclusive lock and is recorded in the
// history ledger; see `tubeclip history`.
package main

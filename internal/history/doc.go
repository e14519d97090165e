// Package history persists the acquisition ledger in SQLite.
//
// Every download, caption fetch, clip render, conversion, and segmentation
// run records an Entry that moves from running to completed or failed. The
// store applies WAL mode and a busy timeout, retries SQLITE_BUSY with a short
// backoff, and refuses to open a database whose schema version differs from
// the one embedded in the binary.
package history

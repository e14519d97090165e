package testsupport

import (
	"context"
	"testing"

	"tubeclip/internal/config"
	"tubeclip/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// BeginEntry records a running entry for tests using the provided store.
func BeginEntry(t testing.TB, store *history.Store, url string, kind history.Kind) *history.Entry {
	t.Helper()

	entry, err := store.Begin(context.Background(), history.Entry{
		RunID:     "test-run",
		SourceURL: url,
		Kind:      kind,
	})
	if err != nil {
		t.Fatalf("store.Begin: %v", err)
	}
	return entry
}

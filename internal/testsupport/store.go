package testsupport

import (
	"context"
	"testing"

	"isynspec/internal/config"
	"isynspec/internal/linestore"
	"isynspec/internal/synspec"
)

// MustOpenStore opens a linestore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *linestore.Store {
	t.Helper()

	store, err := linestore.Open(cfg.Store.Path)
	if err != nil {
		t.Fatalf("linestore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// ImportLines stores a named line list for tests using the provided store.
func ImportLines(t testing.TB, store *linestore.Store, name string, lines []synspec.Line) {
	t.Helper()

	if err := store.Import(context.Background(), name, lines); err != nil {
		t.Fatalf("store.Import: %v", err)
	}
}

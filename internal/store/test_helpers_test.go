package store

import (
	"path/filepath"
	"testing"
)

// createTestStore opens a store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestStatement creates a statement with minimal required fields.
func createTestStatement(name, entity string) Statement {
	return Statement{
		Name:   name,
		Entity: entity,
		Text:   "SELECT " + entity + ".Id FROM " + entity,
	}
}

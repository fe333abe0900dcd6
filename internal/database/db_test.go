package database

import (
	"path/filepath"
	"testing"
)

func TestOpenEnablesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestOpenRejectsUnusablePath(t *testing.T) {
	dir := t.TempDir()
	// A directory is not a database file; Open must fail eagerly rather
	// than handing back a connection that errors on first use.
	if _, err := Open(dir); err == nil {
		t.Error("open on a directory succeeded")
	}
}

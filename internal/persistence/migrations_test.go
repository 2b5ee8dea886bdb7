package persistence

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestListMigrationsSortsAndFiltersSQL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "002_create_notifications.sql")
	writeFile(t, dir, "001_create_snapshots.sql")
	writeFile(t, dir, "README.md")
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := listMigrations(dir)
	if err != nil {
		t.Fatalf("listMigrations: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2 (.sql only): %v", len(files), files)
	}
	if files[0] != "001_create_snapshots.sql" || files[1] != "002_create_notifications.sql" {
		t.Errorf("order = %v", files)
	}
}

func TestListMigrationsMissingDir(t *testing.T) {
	if _, err := listMigrations(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

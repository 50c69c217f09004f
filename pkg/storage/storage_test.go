package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFile_WritesAndReplaces(t *testing.T) {
	s := &Storage{}
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	if err := s.SaveFile(path, []byte("first")); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}
	if err := s.SaveFile(path, []byte("second")); err != nil {
		t.Fatalf("SaveFile() overwrite failed: %v", err)
	}

	data, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	stats, err := s.GetFileStats(path)
	if err != nil {
		t.Fatalf("GetFileStats() failed: %v", err)
	}
	if stats.SizeBytes != int64(len("second")) {
		t.Errorf("SizeBytes = %d, want %d", stats.SizeBytes, len("second"))
	}

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestSaveFile_MissingDirFails(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "missing", "out.md")

	if err := s.SaveFile(path, []byte("x")); err == nil {
		t.Fatal("SaveFile() into missing directory succeeded, want error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file exists after failed save: %v", err)
	}
}

func TestEnsureDir(t *testing.T) {
	s := &Storage{}
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := s.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() failed: %v", err)
	}
	if err := s.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() second call failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

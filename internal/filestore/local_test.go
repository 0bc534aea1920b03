package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	base := t.TempDir()
	store := NewLocalStore(base)

	path, err := store.Save(context.Background(), "avatar.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if path != "/profile-images/avatar.png" {
		t.Fatalf("unexpected stored path %q", path)
	}

	data, err := os.ReadFile(filepath.Join(base, "profile-images", "avatar.png"))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored contents mismatch: %q", data)
	}

	if err := store.Delete(context.Background(), path); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "profile-images", "avatar.png")); !os.IsNotExist(err) {
		t.Fatalf("file should be gone, stat err = %v", err)
	}
}

func TestLocalStore_DeleteMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	err := store.Delete(context.Background(), "/profile-images/nope.png")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLocalStore_DeleteRejectsTraversal(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	if err := store.Delete(context.Background(), "/../etc/passwd"); err == nil {
		t.Fatal("expected error for traversal path")
	}
	if err := store.Delete(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

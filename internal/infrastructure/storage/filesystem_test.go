package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/churchhub/chms-api/internal/core/ports"
)

func TestFilesystemStore_Upload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	url, err := store.Upload(context.Background(), ports.FileUpload{
		Name:    "flyer.png",
		Content: strings.NewReader("image-bytes"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("expected url under /uploads/, got %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("expected original extension preserved, got %q", url)
	}
	if strings.Contains(url, "flyer") {
		t.Fatalf("expected randomised file name, got %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestFilesystemStore_UniqueNames(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	first, err := store.Upload(context.Background(), ports.FileUpload{Name: "a.jpg", Content: strings.NewReader("1")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	second, err := store.Upload(context.Background(), ports.FileUpload{Name: "a.jpg", Content: strings.NewReader("2")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct urls, both were %q", first)
	}
}

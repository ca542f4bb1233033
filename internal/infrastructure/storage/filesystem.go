// Package storage implements the blob store on the local filesystem. Uploads
// land under a configured directory and are served back by URL path.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/churchhub/chms-api/internal/core/ports"
)

// FilesystemStore writes uploads to baseDir and returns URLs rooted at
// baseURL. File names are randomised; the original name only contributes its
// extension.
type FilesystemStore struct {
	baseDir string
	baseURL string
}

func NewFilesystemStore(baseDir, baseURL string) (*FilesystemStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FilesystemStore{baseDir: baseDir, baseURL: baseURL}, nil
}

// Upload stores the file content and returns its public URL.
func (s *FilesystemStore) Upload(ctx context.Context, file ports.FileUpload) (string, error) {
	name, err := randomName(filepath.Ext(file.Name))
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file.Content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

func randomName(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate file name: %w", err)
	}
	return hex.EncodeToString(buf) + ext, nil
}

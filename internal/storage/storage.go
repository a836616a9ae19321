// Package storage persists uploaded files on the local public disk and
// resolves their public URLs.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Storage struct {
	root    string
	baseURL string
}

func New(root, baseURL string) *Storage {
	return &Storage{root: root, baseURL: baseURL}
}

// Save writes the uploaded file under dir with a fresh uuid name, keeping the
// client extension, and returns the stored path relative to the disk root.
func (s *Storage) Save(dir string, file *multipart.FileHeader) (string, error) {
	name := uuid.New().String()
	if ext := filepath.Ext(file.Filename); ext != "" {
		name += ext
	}

	rel := filepath.ToSlash(filepath.Join(dir, name))
	abs := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return rel, nil
}

// PublicURL resolves a stored path against the configured public base URL,
// falling back to /storage/<path> when unset.
func (s *Storage) PublicURL(path string) string {
	path = strings.TrimLeft(path, "/")
	if s.baseURL == "" {
		return "/storage/" + path
	}
	return strings.TrimRight(s.baseURL, "/") + "/" + path
}

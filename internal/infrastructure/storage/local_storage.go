// Package storage provides payment slip storage implementations.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	appordering "github.com/shopadmin/backend/internal/application/ordering"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// LocalSlipStorage implements SlipStorage on the local filesystem. Files
// are written under dir and served by the HTTP layer under urlPrefix.
// Suitable for single-instance deployments and development.
type LocalSlipStorage struct {
	dir       string
	urlPrefix string
}

// NewLocalSlipStorage creates the storage directory if needed
func NewLocalSlipStorage(dir, urlPrefix string) (*LocalSlipStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalSlipStorage{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Store writes content to disk and returns the public URL path
func (s *LocalSlipStorage) Store(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return "", errors.New("filename is required")
	}

	target := filepath.Join(s.dir, name)
	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.urlPrefix + "/" + name, nil
}

// Remove deletes the file behind url. A missing file is not an error.
func (s *LocalSlipStorage) Remove(ctx context.Context, url string) error {
	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		return errors.New("invalid slip url")
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// sanitizeFilename strips path components and characters that are unsafe
// in a file name or URL
func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = unsafeFilenameChars.ReplaceAllString(name, "-")
	return strings.Trim(name, "-.")
}

// Ensure LocalSlipStorage implements SlipStorage
var _ appordering.SlipStorage = (*LocalSlipStorage)(nil)

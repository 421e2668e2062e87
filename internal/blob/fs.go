package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSStore is a filesystem-backed blob store. Objects land under a
// base directory and are served by the HTTP layer under a base URL.
type FSStore struct {
	baseDir string
	baseURL string
}

// Ensure FSStore implements Store
var _ Store = (*FSStore)(nil)

// NewFSStore creates a filesystem store rooted at baseDir. Returned
// URLs are baseURL joined with the object path.
func NewFSStore(baseDir, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	return &FSStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// BaseDir returns the root directory objects are written under
func (s *FSStore) BaseDir() string {
	return s.baseDir
}

// Put writes data to baseDir/path atomically (temp file + rename) and
// returns the public URL for the object.
func (s *FSStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	clean := filepath.Clean(path)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object path %q", path)
	}

	full := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("writing object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("closing object: %w", err)
	}

	if err := os.Rename(tmpName, full); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("finalizing object: %w", err)
	}

	return s.baseURL + "/" + filepath.ToSlash(clean), nil
}

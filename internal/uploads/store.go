// Package uploads persists user-provided PDF files under the data directory
// so the ingestion pipeline can read them from disk.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store writes uploaded files into a single flat directory.
type Store struct {
	root string
}

// NewStore creates the uploads directory if needed and returns a store over it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the uploads directory path.
func (s *Store) Root() string {
	return s.root
}

// Save writes the upload to disk under a sanitized version of name and
// returns the absolute path. An existing file with the same name is replaced.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	clean := SanitizeName(name)
	if clean == "" {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	path := filepath.Join(s.root, clean)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}
	return path, nil
}

// List returns the absolute paths of all stored PDF files, sorted by name.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploads directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ".pdf" {
			continue
		}
		paths = append(paths, filepath.Join(s.root, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Clear removes every stored file. Used by the full index reset.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("failed to read uploads directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.root, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// SanitizeName strips any path components and unsafe characters from an
// uploaded file name, keeping only the base name.
func SanitizeName(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	base = strings.TrimSpace(base)
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.TrimSpace(b.String())
}

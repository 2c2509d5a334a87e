package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrInvalidName = errors.New("storage: invalid file name")

// FileStorage provides methods to manage files in a specific directory.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a new FileStorage instance with the given directory.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: filepath.Clean(dir)}
}

// Dir returns the storage root.
func (s *FileStorage) Dir() string {
	return s.dir
}

// EnsureDir creates the storage directory if it does not exist yet.
func (s *FileStorage) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create storage directory %s: %w", s.dir, err)
	}
	return nil
}

// Path resolves filename inside the storage directory. Names that carry a
// path component are rejected.
func (s *FileStorage) Path(filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) || filename != filepath.Base(filename) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	return filepath.Join(s.dir, filename), nil
}

// WriteFile writes data to filename. The content goes to a temporary file in
// the same directory first and is renamed into place, so concurrent writers of
// the same name never leave a partial file behind; the last rename wins.
func (s *FileStorage) WriteFile(filename string, data []byte) error {
	target, err := s.Path(filename)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+filename+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temporary file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temporary file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temporary file: %w", err)
	}
	return nil
}

// Open opens filename for reading.
func (s *FileStorage) Open(filename string) (*os.File, error) {
	p, err := s.Path(filename)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// FileExists checks whether a file exists in the storage directory.
func (s *FileStorage) FileExists(filename string) bool {
	p, err := s.Path(filename)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// GetFileSize returns the size of the file in bytes.
func (s *FileStorage) GetFileSize(filename string) (int64, error) {
	p, err := s.Path(filename)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// List returns the sorted names of regular files with the given extension.
// Temporary files from in-flight writes are skipped. A missing directory
// lists as empty.
func (s *FileStorage) List(ext string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if ext != "" && !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

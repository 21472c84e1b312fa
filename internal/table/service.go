package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Service loads and stores a table document. Views and the session depend
// on this interface, never on the filesystem directly.
type Service interface {
	// Path is the location of the document.
	Path() string
	// Load reads the document. A missing file yields ErrNotFound.
	Load() (*Table, error)
	// Save writes the document.
	Save(t *Table) error
	// ModTime reports when the document last changed on disk.
	ModTime() (time.Time, error)
}

// Refresher is implemented by services that cache reads. Refresh makes the
// next read reach the underlying store.
type Refresher interface {
	Refresh()
}

// ErrNotFound is returned by Load when the document does not exist yet.
var ErrNotFound = errors.New("table file not found")

// FileService stores a table as indented JSON.
type FileService struct {
	path string
}

// Compile-time check.
var _ Service = (*FileService)(nil)

// NewFileService returns a service for the JSON file at path.
func NewFileService(path string) *FileService {
	return &FileService{path: path}
}

// Path returns the file path.
func (s *FileService) Path() string { return s.path }

// Load reads and decodes the file.
func (s *FileService) Load() (*Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", s.path, ErrNotFound)
		}
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	t := &Table{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if t.Name == "" {
		t.Name = nameFromPath(s.path)
	}
	return t, nil
}

// Save writes the table to a temporary file in the same directory and
// renames it over the target, so readers never observe a partial file.
func (s *FileService) Save(t *Table) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}

// ModTime stats the file.
func (s *FileService) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %s: %w", s.path, err)
	}
	return info.ModTime(), nil
}

// nameFromPath derives a table name from its file name.
func nameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

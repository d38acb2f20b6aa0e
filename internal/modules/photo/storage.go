package photo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage persists the raw image bytes. The metadata row in the database
// carries the path returned by Save.
type Storage interface {
	Save(name string, src io.Reader) (path string, size int64, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// FileStorage writes photos to a directory on local disk.
type FileStorage struct{ dir string }

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Save streams src into a new file named after the photo id. name must not
// contain path separators; callers pass a generated id, not user input.
func (s *FileStorage) Save(name string, src io.Reader) (string, int64, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	size, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, err
	}
	return path, size, nil
}

func (s *FileStorage) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (s *FileStorage) Remove(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

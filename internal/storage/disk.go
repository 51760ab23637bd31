package storage

import (
	"errors"
	"os"
	"path/filepath"
)

var ErrInvalidFileName = errors.New("invalid file name")

// ImageStore persists uploaded photo bytes and serves them back by name.
type ImageStore interface {
	Save(fileName string, data []byte) error
	Path(fileName string) (string, error)
}

type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(fileName string, data []byte) error {
	if fileName == "" || fileName != filepath.Base(fileName) {
		return ErrInvalidFileName
	}
	return os.WriteFile(filepath.Join(s.dir, fileName), data, 0o644)
}

// Path returns the on-disk location of a stored image. Names that would
// escape the store directory are rejected before touching the filesystem.
func (s *DiskStore) Path(fileName string) (string, error) {
	if fileName == "" || fileName != filepath.Base(fileName) {
		return "", ErrInvalidFileName
	}
	path := filepath.Join(s.dir, fileName)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/folio-cms/folio/backend/internal/service"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/errors"
)

// Storage keeps blobs as flat files under rootPath.
type Storage struct {
	rootPath string
}

// Ensure Storage struct implements the interface at compile time.
var _ service.BlobStorage = (*Storage)(nil)

func New(rootPath string) (*Storage, error) {
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Save writes data under name. Names must be plain file names.
func (s *Storage) Save(name string, data io.Reader) (domain.Blob, error) {
	fullPath, err := s.path(name)
	if err != nil {
		return domain.Blob{}, err
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return domain.Blob{}, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, data)
	if err != nil {
		os.Remove(fullPath) // best effort
		return domain.Blob{}, fmt.Errorf("failed to copy file data: %w", err)
	}

	return domain.Blob{Name: name, SizeBytes: n}, nil
}

func (s *Storage) Open(name string) (io.ReadCloser, error) {
	fullPath, err := s.path(name)
	if err != nil {
		return nil, errors.NotFound("Media not found")
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("Media not found")
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete is a no-op for blobs that are already gone.
func (s *Storage) Delete(name string) error {
	fullPath, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// path rejects anything that could escape rootPath.
func (s *Storage) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", errors.Validation("Invalid media name")
	}
	return filepath.Join(s.rootPath, name), nil
}

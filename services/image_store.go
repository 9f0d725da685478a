package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shoppy-store/shoppy-api/utils"
)

// ImageStore abstracts where uploaded image bytes live. Save applies the
// collision policy: while the target filename is taken, the name is rebased
// with a "_copy" suffix and retried, so repeated collisions cascade
// (x.png, x_copy.png, x_copy_copy.png, ...). Delete of a missing file is not
// an error; image cleanup is best-effort.
type ImageStore interface {
	// Save stores the bytes under dir and returns the filename actually used
	Save(dir, filename string, r io.Reader) (string, error)

	// Delete removes a stored file; missing files are swallowed
	Delete(dir, filename string) error

	// Exists reports whether a file is already stored under dir
	Exists(dir, filename string) (bool, error)
}

var imageStoreInstance ImageStore

// InitImageStore initializes the image store backend
func InitImageStore(store ImageStore) ImageStore {
	imageStoreInstance = store
	return imageStoreInstance
}

// GetImageStore returns the initialized image store instance
func GetImageStore() ImageStore {
	return imageStoreInstance
}

// SetImageStore sets the image store instance (primarily for testing)
func SetImageStore(store ImageStore) {
	imageStoreInstance = store
}

// LocalImageStore implements ImageStore on the local filesystem.
// It is the default backend; directories are created on demand.
type LocalImageStore struct {
	// Root is prepended to every dir; empty means the working directory
	Root string
}

// NewLocalImageStore creates a filesystem-backed image store rooted at root
func NewLocalImageStore(root string) *LocalImageStore {
	return &LocalImageStore{Root: root}
}

// Save writes the file under dir, renaming with the "_copy" cascade until the
// target name is free
func (s *LocalImageStore) Save(dir, filename string, r io.Reader) (string, error) {
	fullDir := filepath.Join(s.Root, dir)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	for {
		exists, err := s.Exists(dir, filename)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		filename = utils.CopyName(filename)
	}

	dst, err := os.Create(filepath.Join(fullDir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to save image file: %w", err)
	}

	return filename, nil
}

// Delete removes a stored file; a missing file is not an error
func (s *LocalImageStore) Delete(dir, filename string) error {
	err := os.Remove(filepath.Join(s.Root, dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// Exists reports whether the file is present on disk
func (s *LocalImageStore) Exists(dir, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.Root, dir, filename))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat image file: %w", err)
}

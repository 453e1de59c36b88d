package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps uploaded images in a flat directory under generated names.
// References handed out ("/uploads/<name>") are what gets persisted on the
// owning row; deleting the row deletes the file.
type Store interface {
	Save(originalName string, src io.Reader) (string, error)
	Delete(ref string) error
}

type diskStore struct {
	dir string
}

func NewDiskStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

func (s *diskStore) Save(originalName string, src io.Reader) (string, error) {
	base := sanitizeName(filepath.Base(originalName))
	name := uuid.New().String() + "-" + base

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/uploads/" + name, nil
}

func (s *diskStore) Delete(ref string) error {
	if ref == "" {
		return nil
	}

	// Ref may be a bare name or an /uploads/... path; only the base is real.
	name := filepath.Base(ref)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "file"
	}
	return name
}

package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ObjectStore is the remote side of a backup: a flat folder of named objects.
type ObjectStore interface {
	// DeleteNamed removes every object called name in folder. No match is not an error.
	DeleteNamed(ctx context.Context, folder, name string) error
	Upload(ctx context.Context, folder, name string, r io.Reader) error
}

// LocalStore keeps backups in a directory; folder is a subdirectory of Dir.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) *LocalStore { return &LocalStore{Dir: dir} }

func (s *LocalStore) path(folder, name string) string {
	return filepath.Join(s.Dir, folder, filepath.Base(name))
}

func (s *LocalStore) DeleteNamed(_ context.Context, folder, name string) error {
	err := os.Remove(s.path(folder, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) Upload(ctx context.Context, folder, name string, r io.Reader) error {
	dst := s.path(folder, name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("copy: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

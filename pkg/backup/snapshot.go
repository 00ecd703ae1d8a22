// Package backup copies the SQLite store off-box. The copy is taken with
// VACUUM INTO, which reads inside its own transaction, so writers running
// at the same time never leave a half-written snapshot.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Snapshot writes a consistent copy of the database into dir and returns its
// path. The caller removes the file.
func Snapshot(ctx context.Context, db *gorm.DB, dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot dir: %w", err)
	}
	path := filepath.Join(dir, "nippo-snapshot-"+uuid.NewString()+".db")
	if err := db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("vacuum into: %w", err)
	}
	return path, nil
}

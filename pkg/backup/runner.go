package backup

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"nippo/config"
	"nippo/pkg/logger"
	"nippo/pkg/metrics"
)

type Runner struct {
	db     *gorm.DB
	store  ObjectStore
	folder string
	name   string
	tmpDir string
}

func NewRunner(db *gorm.DB, store ObjectStore, folder, name string) *Runner {
	return &Runner{db: db, store: store, folder: folder, name: name}
}

// Run snapshots the database and replaces the remote copy: any object with
// the same name is deleted first, then the snapshot is uploaded.
func (r *Runner) Run(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			metrics.Backups.WithLabelValues("failure").Inc()
			logger.L.Error("backup.failed", zap.String("name", r.name), zap.Error(err))
			return
		}
		metrics.Backups.WithLabelValues("success").Inc()
		logger.L.Info("backup.done", zap.String("name", r.name), zap.String("folder", r.folder),
			zap.Duration("took", time.Since(start)))
	}()

	path, err := Snapshot(ctx, r.db, r.tmpDir)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	if err := r.store.DeleteNamed(ctx, r.folder, r.name); err != nil {
		return fmt.Errorf("delete previous: %w", err)
	}
	if err := r.store.Upload(ctx, r.folder, r.name, f); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	return nil
}

// Every runs the backup on a ticker until ctx is cancelled. Failures are
// logged and counted by Run and never stop the loop.
func (r *Runner) Every(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = r.Run(ctx)
		}
	}
}

// FromConfig picks Drive when a credentials file is configured and the local
// backup directory otherwise.
func FromConfig(ctx context.Context, db *gorm.DB, cfg config.BackupConfig) (*Runner, error) {
	if cfg.CredentialsFile != "" {
		ds, err := NewDriveStore(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return NewRunner(db, ds, cfg.FolderID, cfg.FileName), nil
	}
	return NewRunner(db, NewLocalStore(cfg.LocalDir), "", cfg.FileName), nil
}

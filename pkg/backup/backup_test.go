package backup

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nippo/database"
	"nippo/entities"
)

func TestLocalStoreReplacesSameName(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	ctx := context.Background()

	require.NoError(t, s.DeleteNamed(ctx, "f", "b.db"))
	require.NoError(t, s.Upload(ctx, "f", "b.db", strings.NewReader("one")))
	require.NoError(t, s.DeleteNamed(ctx, "f", "b.db"))
	require.NoError(t, s.Upload(ctx, "f", "b.db", strings.NewReader("two")))

	got, err := os.ReadFile(filepath.Join(dir, "f", "b.db"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "f"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunUploadsReadableSnapshot(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, db.Create(&entities.User{Username: "e1", DisplayName: "Alice"}).Error)

	remote := t.TempDir()
	r := NewRunner(db, NewLocalStore(remote), "folder", "nippo_backup.db")
	require.NoError(t, r.Run(context.Background()))
	// second run replaces the first copy
	require.NoError(t, r.Run(context.Background()))

	copyPath := filepath.Join(remote, "folder", "nippo_backup.db")
	restored, err := database.Open(copyPath)
	require.NoError(t, err)
	defer database.Close(restored)

	var users []entities.User
	require.NoError(t, restored.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].DisplayName)
}

type failingStore struct {
	deleted  []string
	uploaded int
}

func (f *failingStore) DeleteNamed(_ context.Context, _, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *failingStore) Upload(context.Context, string, string, io.Reader) error {
	f.uploaded++
	return errors.New("quota exceeded")
}

func TestRunReportsUploadFailure(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	defer database.Close(db)

	fs := &failingStore{}
	r := NewRunner(db, fs, "folder", "nippo_backup.db")
	err = r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, []string{"nippo_backup.db"}, fs.deleted)
	assert.Equal(t, 1, fs.uploaded)
}

func TestSnapshotIsRemovedAfterRun(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	defer database.Close(db)

	tmp := t.TempDir()
	r := NewRunner(db, NewLocalStore(t.TempDir()), "", "b.db")
	r.tmpDir = tmp
	require.NoError(t, r.Run(context.Background()))

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

package serviceImp

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nippo/database"
	"nippo/pkg/export"
	"nippo/pkg/store/repositoryImp"
	"nippo/pkg/store/service"
)

func xlsx(t *testing.T, rows ...[]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestImportUpsertsStores(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	defer database.Close(db)

	svc := NewStoreService(repositoryImp.New(db))
	ctx := context.Background()

	res, err := svc.Import(ctx, xlsx(t,
		[]any{"得意先c", "得意先名", "住所"},
		[]any{"001", "本店", "渋谷区"},
		[]any{"002", "支店", "新宿区"},
	))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	_, err = svc.Import(ctx, xlsx(t,
		[]any{"得意先c", "得意先名", "住所"},
		[]any{"002", "新宿支店", "新宿区西新宿"},
		[]any{"003", "池袋店", ""},
	))
	require.NoError(t, err)

	stores := svc.List(ctx)
	require.Len(t, stores, 3)
	assert.Equal(t, "001", stores[0].Code)
	assert.Equal(t, "新宿支店", stores[1].Name)
	assert.Equal(t, "新宿区西新宿", stores[1].Address)
}

func TestImportWithMissingColumnCreatesNothing(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	defer database.Close(db)

	svc := NewStoreService(repositoryImp.New(db))
	ctx := context.Background()

	_, err = svc.Import(ctx, xlsx(t,
		[]any{"得意先名", "住所"},
		[]any{"本店", "渋谷区"},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrBadSpreadsheet)
	assert.ErrorIs(t, err, export.ErrMissingColumn)
	assert.Contains(t, err.Error(), "得意先c")
	assert.Empty(t, svc.List(ctx))
}

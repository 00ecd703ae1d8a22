package serviceImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nippo/database"
	"nippo/entities"
	fbRepoImp "nippo/pkg/feedback/repositoryImp"
	"nippo/pkg/report/repository"
	"nippo/pkg/report/repositoryImp"
	"nippo/pkg/report/service"
	"nippo/pkg/session"
)

// 1x1 transparent PNG
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func setup(t *testing.T) (*gorm.DB, service.ReportService, session.Actor, session.Actor) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	alice := entities.User{Username: "a001", DisplayName: "Alice"}
	bob := entities.User{Username: "b001", DisplayName: "Bob"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	svc := NewReportService(repositoryImp.New(db), fbRepoImp.New(db))
	return db, svc, session.FromUser(&alice), session.FromUser(&bob)
}

func input() service.ReportInput {
	return service.ReportInput{
		ExecutionDate: "2026-10-14",
		Category:      "営業",
		Location:      "渋谷",
		Content:       "新商品の提案",
		Remarks:       "反応良好",
		VisitedStores: []entities.VisitedStore{{"code": "S01", "name": "渋谷店", "content": "棚替え"}},
	}
}

func TestCreateThenListReadsBackOneRecord(t *testing.T) {
	_, svc, alice, _ := setup(t)
	ctx := context.Background()

	before := svc.List(ctx, repository.Filter{})
	p, err := svc.Create(ctx, alice, input())
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	after := svc.List(ctx, repository.Filter{})
	require.Len(t, after, len(before)+1)

	got := after[0]
	in := input()
	assert.Equal(t, alice.UserID, got.UserID)
	assert.Equal(t, in.ExecutionDate, got.ExecutionDate)
	assert.Equal(t, in.Category, got.Category)
	assert.Equal(t, in.Location, got.Location)
	assert.Equal(t, in.Content, got.Content)
	assert.Equal(t, in.Remarks, got.Remarks)
	require.Len(t, got.VisitedStores, 1)
	assert.Equal(t, "S01", got.VisitedStores[0].Code())
	require.NotNil(t, got.Author)
	assert.Equal(t, "Alice", got.Author.Name())
	assert.False(t, got.PostDate.IsZero())
}

func TestCreateValidates(t *testing.T) {
	_, svc, alice, _ := setup(t)
	ctx := context.Background()

	in := input()
	in.ExecutionDate = ""
	_, err := svc.Create(ctx, alice, in)
	assert.ErrorIs(t, err, service.ErrDateRequired)

	in.ExecutionDate = "14/10/2026"
	_, err = svc.Create(ctx, alice, in)
	assert.ErrorIs(t, err, service.ErrInvalidDate)

	_, err = svc.Create(ctx, session.Actor{}, input())
	assert.ErrorIs(t, err, service.ErrNoAuthor)
}

func TestListFilters(t *testing.T) {
	_, svc, alice, bob := setup(t)
	ctx := context.Background()

	for _, c := range []struct {
		actor session.Actor
		date  string
	}{{alice, "2026-09-30"}, {alice, "2026-10-01"}, {bob, "2026-10-02"}} {
		in := input()
		in.ExecutionDate = c.date
		_, err := svc.Create(ctx, c.actor, in)
		require.NoError(t, err)
	}

	assert.Len(t, svc.List(ctx, repository.Filter{UserID: alice.UserID}), 2)
	assert.Len(t, svc.List(ctx, repository.Filter{From: "2026-10-01"}), 2)
	assert.Len(t, svc.List(ctx, repository.Filter{From: "2026-10-01", To: "2026-10-01"}), 1)
}

func TestUpdateOnlyByAuthorOrAdmin(t *testing.T) {
	_, svc, alice, bob := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, input())
	require.NoError(t, err)

	in := input()
	in.Content = "書き直し"
	_, err = svc.Update(ctx, bob, p.ID, in)
	require.ErrorIs(t, err, service.ErrForbidden)

	admin := bob
	admin.IsAdmin = true
	_, err = svc.Update(ctx, admin, p.ID, in)
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "書き直し", got.Content)
	assert.Equal(t, alice.UserID, got.UserID)

	_, err = svc.Update(ctx, alice, 9999, in)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteRemovesImagesCommentsAndReactions(t *testing.T) {
	db, svc, alice, bob := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, input())
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, alice, p.ID, "a.png", "", pngBytes)
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Comment{UserID: bob.UserID, TargetType: entities.TargetPost, TargetID: p.ID, Content: "x"}).Error)
	require.NoError(t, db.Create(&entities.Reaction{UserID: bob.UserID, TargetType: entities.TargetPost, TargetID: p.ID, Type: entities.ReactionLike}).Error)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)
	assert.Equal(t, int64(1), got.CommentCount)

	require.ErrorIs(t, svc.Delete(ctx, bob, p.ID), service.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, alice, p.ID))

	for _, m := range []any{&entities.Post{}, &entities.ReportImage{}, &entities.Comment{}, &entities.Reaction{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T", m)
	}
	assert.ErrorIs(t, svc.Delete(ctx, alice, p.ID), service.ErrNotFound)
}

func TestImages(t *testing.T) {
	_, svc, alice, bob := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, input())
	require.NoError(t, err)

	img, err := svc.AddImage(ctx, alice, p.ID, "shelf.png", "application/octet-stream", pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.NotEmpty(t, img.Data)

	_, err = svc.AddImage(ctx, alice, p.ID, "notes.txt", "text/plain", []byte("hello"))
	assert.ErrorIs(t, err, service.ErrNotImage)

	_, err = svc.AddImage(ctx, bob, p.ID, "b.png", "image/png", pngBytes)
	assert.ErrorIs(t, err, service.ErrForbidden)

	imgs := svc.ListImages(ctx, p.ID)
	require.Len(t, imgs, 1)
	assert.Equal(t, "shelf.png", imgs[0].FileName)

	assert.ErrorIs(t, svc.DeleteImage(ctx, bob, img.ID), service.ErrForbidden)
	require.NoError(t, svc.DeleteImage(ctx, alice, img.ID))
	assert.Empty(t, svc.ListImages(ctx, p.ID))
	assert.ErrorIs(t, svc.DeleteImage(ctx, alice, img.ID), service.ErrNotFound)
}

func TestListDegradesToEmptyOnStorageError(t *testing.T) {
	db, svc, _, _ := setup(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	got := svc.List(context.Background(), repository.Filter{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

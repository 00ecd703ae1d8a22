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
	"nippo/pkg/feedback/repositoryImp"
	"nippo/pkg/feedback/service"
	"nippo/pkg/session"
)

type fixture struct {
	db    *gorm.DB
	svc   service.FeedbackService
	alice session.Actor
	bob   session.Actor
	post  entities.Post
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	alice := entities.User{Username: "a001", DisplayName: "Alice"}
	bob := entities.User{Username: "b001", DisplayName: "Bob"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	post := entities.Post{UserID: alice.ID, ExecutionDate: "2026-10-01", Content: "visited"}
	require.NoError(t, db.Omit("Author").Create(&post).Error)

	return fixture{
		db:    db,
		svc:   NewFeedbackService(repositoryImp.New(db)),
		alice: session.FromUser(&alice),
		bob:   session.FromUser(&bob),
		post:  post,
	}
}

func notificationsFor(t *testing.T, db *gorm.DB, uid uint) []entities.Notification {
	t.Helper()
	var out []entities.Notification
	require.NoError(t, db.Where("user_id = ?", uid).Find(&out).Error)
	return out
}

func TestAddCommentNotifiesAuthorOnce(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c, err := f.svc.AddComment(ctx, f.bob, entities.TargetPost, f.post.ID, "  nice work  ")
	require.NoError(t, err)
	assert.Equal(t, "nice work", c.Content)

	ns := notificationsFor(t, f.db, f.alice.UserID)
	require.Len(t, ns, 1)
	assert.Equal(t, "Bobさんがあなたの日報にコメントしました", ns[0].Message)
	assert.False(t, ns[0].IsRead)
	assert.Empty(t, notificationsFor(t, f.db, f.bob.UserID))
}

func TestSelfCommentStillNotifies(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AddComment(context.Background(), f.alice, entities.TargetPost, f.post.ID, "memo")
	require.NoError(t, err)
	assert.Len(t, notificationsFor(t, f.db, f.alice.UserID), 1)
}

func TestCommentOnPlanUsesPlanMessage(t *testing.T) {
	f := setup(t)
	plan := entities.WeeklyPlan{UserID: f.alice.UserID, StartDate: "2026-10-05", EndDate: "2026-10-11"}
	require.NoError(t, f.db.Omit("Author").Create(&plan).Error)

	_, err := f.svc.AddComment(context.Background(), f.bob, entities.TargetPlan, plan.ID, "ok")
	require.NoError(t, err)

	ns := notificationsFor(t, f.db, f.alice.UserID)
	require.Len(t, ns, 1)
	assert.Contains(t, ns[0].Message, "週間予定")
}

func TestCommentOnMissingTargetWritesNothing(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AddComment(context.Background(), f.bob, entities.TargetPost, 9999, "hello")
	require.ErrorIs(t, err, service.ErrTargetNotFound)

	var comments, notes int64
	f.db.Model(&entities.Comment{}).Count(&comments)
	f.db.Model(&entities.Notification{}).Count(&notes)
	assert.Zero(t, comments)
	assert.Zero(t, notes)
}

func TestCommentValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.AddComment(ctx, f.bob, entities.TargetPost, f.post.ID, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyComment)

	_, err = f.svc.AddComment(ctx, f.bob, "photo", f.post.ID, "hi")
	assert.ErrorIs(t, err, service.ErrInvalidTarget)
}

func TestListComments(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, s := range []string{"one", "two"} {
		_, err := f.svc.AddComment(ctx, f.bob, entities.TargetPost, f.post.ID, s)
		require.NoError(t, err)
	}

	got := f.svc.ListComments(ctx, entities.TargetPost, f.post.ID)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Content)
	require.NotNil(t, got[0].Author)
	assert.Equal(t, "Bob", got[0].Author.Name())

	assert.Empty(t, f.svc.ListComments(ctx, entities.TargetPlan, f.post.ID))
}

func TestAddReactionRejectsUnknownType(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.AddReaction(ctx, f.bob, entities.TargetPost, f.post.ID, "LIKE")
	require.ErrorIs(t, err, service.ErrInvalidReactionType)

	_, err = f.svc.AddReaction(ctx, f.bob, entities.TargetPost, f.post.ID, entities.ReactionLike)
	require.NoError(t, err)
	// duplicates are allowed
	_, err = f.svc.AddReaction(ctx, f.bob, entities.TargetPost, f.post.ID, entities.ReactionLike)
	require.NoError(t, err)
	_, err = f.svc.AddReaction(ctx, f.alice, entities.TargetPost, f.post.ID, entities.ReactionNiceFight)
	require.NoError(t, err)

	counts, err := repositoryImp.New(f.db).Counts(ctx, entities.TargetPost, []uint{f.post.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[f.post.ID].Likes)
	assert.Equal(t, int64(1), counts[f.post.ID].NiceFights)
}

func TestReactionOnMissingTargetWritesNothing(t *testing.T) {
	f := setup(t)

	_, err := f.svc.AddReaction(context.Background(), f.bob, entities.TargetPlan, 9999, entities.ReactionLike)
	require.ErrorIs(t, err, service.ErrTargetNotFound)

	var n int64
	f.db.Model(&entities.Reaction{}).Count(&n)
	assert.Zero(t, n)
}

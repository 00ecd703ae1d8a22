package serviceImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nippo/database"
	"nippo/entities"
	fbRepoImp "nippo/pkg/feedback/repositoryImp"
	"nippo/pkg/plan/repository"
	"nippo/pkg/plan/repositoryImp"
	"nippo/pkg/plan/service"
	"nippo/pkg/session"
)

func TestEndOfWeek(t *testing.T) {
	cases := map[string]string{
		"2026-10-12": "2026-10-18",
		"2026-12-28": "2027-01-03",
		"2028-02-28": "2028-03-05",
	}
	for start, want := range cases {
		got, err := EndOfWeek(start)
		require.NoError(t, err)
		assert.Equal(t, want, got, start)
	}
	_, err := EndOfWeek("next monday")
	assert.ErrorIs(t, err, service.ErrInvalidStartDate)

	// day columns are fixed Monday..Sunday, so a Wednesday start is refused
	_, err = EndOfWeek("2026-10-14")
	assert.ErrorIs(t, err, service.ErrStartNotMonday)
}

func TestWeeklyPlanLifecycle(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	defer database.Close(db)

	alice := entities.User{Username: "a001", DisplayName: "Alice"}
	bob := entities.User{Username: "b001", DisplayName: "Bob"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	svc := NewPlanService(repositoryImp.New(db), fbRepoImp.New(db))
	ctx := context.Background()

	p, err := svc.Create(ctx, session.FromUser(&alice), service.PlanInput{
		StartDate: "2026-10-12",
		Monday:    "本社会議",
		Friday:    "店舗巡回",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", p.EndDate)

	_, err = svc.Create(ctx, session.Actor{}, service.PlanInput{StartDate: "2026-10-12"})
	assert.ErrorIs(t, err, service.ErrNoAuthor)

	require.NoError(t, db.Create(&entities.Reaction{UserID: bob.ID, TargetType: entities.TargetPlan, TargetID: p.ID, Type: entities.ReactionNiceFight}).Error)

	list := svc.List(ctx, repository.Filter{UserID: alice.ID})
	require.Len(t, list, 1)
	assert.Equal(t, "本社会議", list[0].Monday)
	assert.Equal(t, "店舗巡回", list[0].Days()[4])
	assert.Equal(t, int64(1), list[0].NiceFights)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, "Alice", list[0].Author.Name())

	assert.Empty(t, svc.List(ctx, repository.Filter{From: "2026-10-13"}))

	assert.ErrorIs(t, svc.Delete(ctx, session.FromUser(&bob), p.ID), service.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, session.FromUser(&alice), p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	var reactions int64
	db.Model(&entities.Reaction{}).Count(&reactions)
	assert.Zero(t, reactions)
}

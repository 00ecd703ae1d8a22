package serviceImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nippo/database"
	"nippo/pkg/user/repositoryImp"
	"nippo/pkg/user/service"
)

func TestCreateAndAuthenticate(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "nippo.db"))
	require.NoError(t, err)
	defer database.Close(db)

	svc := NewUserService(repositoryImp.New(db))
	ctx := context.Background()

	u, err := svc.Create(ctx, service.UserInput{
		Username:    " e1001 ",
		Password:    "s3cret",
		DisplayName: "山田",
		Departments: []string{"営業1課"},
	})
	require.NoError(t, err)
	assert.Equal(t, "e1001", u.Username)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	_, err = svc.Create(ctx, service.UserInput{Username: "e1001", Password: "x"})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)

	_, err = svc.Create(ctx, service.UserInput{Username: "e1002"})
	assert.ErrorIs(t, err, service.ErrInvalidUser)

	got, err := svc.Authenticate(ctx, "e1001", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, []string{"営業1課"}, got.Departments)

	_, err = svc.Authenticate(ctx, "e1001", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	assert.Len(t, svc.List(ctx), 1)
	_, err = svc.Get(ctx, 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

package serviceImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nippo/entities"
	"nippo/pkg/auth/service"
)

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokenService("k1")
	tok, err := tokens.Issue(&entities.User{ID: 7, Username: "e7", DisplayName: "Alice", IsAdmin: true})
	require.NoError(t, err)

	actor, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), actor.UserID)
	assert.Equal(t, "Alice", actor.Name)
	assert.True(t, actor.IsAdmin)

	_, err = NewTokenService("k2").Parse(tok)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	s := &jwtTokens{secret: []byte("k"), now: func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }}
	tok, err := s.Issue(&entities.User{ID: 1, Username: "e1"})
	require.NoError(t, err)

	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

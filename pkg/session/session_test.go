package session

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"nippo/entities"
)

func TestCanModify(t *testing.T) {
	owner := Actor{UserID: 1}
	other := Actor{UserID: 2}
	admin := Actor{UserID: 3, IsAdmin: true}

	assert.True(t, owner.CanModify(1))
	assert.False(t, other.CanModify(1))
	assert.True(t, admin.CanModify(1))
}

func TestSetGet(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())

	_, ok := Get(c)
	assert.False(t, ok)

	u := &entities.User{ID: 5, Username: "e5", DisplayName: "Alice"}
	Set(c, FromUser(u))
	a, ok := Get(c)
	assert.True(t, ok)
	assert.Equal(t, Actor{UserID: 5, Name: "Alice"}, a)
}

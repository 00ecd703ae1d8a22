// Package session carries the acting user explicitly through every operation.
package session

import (
	"github.com/labstack/echo/v4"

	"nippo/entities"
)

const contextKey = "actor"

// Actor identifies who performs an operation.
type Actor struct {
	UserID  uint
	Name    string
	IsAdmin bool
}

func FromUser(u *entities.User) Actor {
	return Actor{UserID: u.ID, Name: u.Name(), IsAdmin: u.IsAdmin}
}

// CanModify reports whether the actor may edit or delete a row owned by ownerID.
func (a Actor) CanModify(ownerID uint) bool {
	return a.IsAdmin || a.UserID == ownerID
}

func Set(c echo.Context, a Actor) { c.Set(contextKey, a) }

func Get(c echo.Context) (Actor, bool) {
	a, ok := c.Get(contextKey).(Actor)
	return a, ok && a.UserID != 0
}

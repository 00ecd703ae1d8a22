package service

import (
	"errors"

	"nippo/entities"
	"nippo/pkg/session"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenService interface {
	Issue(u *entities.User) (string, error)
	Parse(token string) (session.Actor, error)
}

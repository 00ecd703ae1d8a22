package service

import (
	"context"
	"errors"

	"nippo/entities"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidUser        = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("user not found")
)

type UserInput struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	DisplayName string   `json:"display_name"`
	Departments []string `json:"departments"`
	IsAdmin     bool     `json:"is_admin"`
}

type UserService interface {
	Create(ctx context.Context, in UserInput) (*entities.User, error)
	// Authenticate checks the password against the stored bcrypt hash.
	Authenticate(ctx context.Context, username, password string) (*entities.User, error)
	Get(ctx context.Context, id uint) (*entities.User, error)
	List(ctx context.Context) []entities.User
}

package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nippo/entities"
	"nippo/pkg/logger"
	"nippo/pkg/metrics"
	"nippo/pkg/user/repository"
	"nippo/pkg/user/service"
)

type userSvc struct{ r repository.UserRepository }

func NewUserService(r repository.UserRepository) service.UserService { return &userSvc{r} }

func (s *userSvc) Create(ctx context.Context, in service.UserInput) (*entities.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, service.ErrInvalidUser
	}
	if _, err := s.r.FindByUsername(ctx, username); err == nil {
		return nil, service.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entities.User{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Departments:  in.Departments,
		IsAdmin:      in.IsAdmin,
	}
	if err := s.r.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	metrics.Created.WithLabelValues("user").Inc()
	logger.L.Info("user.create", zap.Uint("uid", u.ID), zap.String("username", u.Username), zap.Bool("admin", u.IsAdmin))
	return u, nil
}

func (s *userSvc) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	u, err := s.r.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		logger.L.Info("user.login_rejected", zap.String("username", username))
		return nil, service.ErrInvalidCredentials
	}
	return u, nil
}

func (s *userSvc) Get(ctx context.Context, id uint) (*entities.User, error) {
	u, err := s.r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *userSvc) List(ctx context.Context) []entities.User {
	out, err := s.r.List(ctx)
	if err != nil {
		logger.L.Error("user.list_failed", zap.Error(err))
		metrics.ReadFailures.WithLabelValues("users").Inc()
		return []entities.User{}
	}
	return out
}

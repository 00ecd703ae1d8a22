package service

import (
	"context"
	"errors"

	"nippo/entities"
	"nippo/pkg/plan/repository"
	"nippo/pkg/session"
)

var (
	ErrNotFound         = errors.New("weekly plan not found")
	ErrForbidden        = errors.New("only the author or an admin may delete this plan")
	ErrNoAuthor         = errors.New("plan author is required")
	ErrInvalidStartDate = errors.New("start_date must be YYYY-MM-DD")
	ErrStartNotMonday   = errors.New("start_date must be a Monday")
)

type PlanInput struct {
	StartDate string `json:"start_date"`
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

type PlanService interface {
	Create(ctx context.Context, actor session.Actor, in PlanInput) (*entities.WeeklyPlan, error)
	Get(ctx context.Context, id uint) (*entities.WeeklyPlan, error)
	List(ctx context.Context, f repository.Filter) []entities.WeeklyPlan
	Delete(ctx context.Context, actor session.Actor, id uint) error
}

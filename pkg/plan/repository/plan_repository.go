package repository

import (
	"context"

	"nippo/entities"
)

// Filter narrows a plan listing; From/To bound StartDate (YYYY-MM-DD, inclusive).
type Filter struct {
	UserID uint
	From   string
	To     string
}

type PlanRepository interface {
	Create(ctx context.Context, p *entities.WeeklyPlan) error
	FindByID(ctx context.Context, id uint) (*entities.WeeklyPlan, error)
	List(ctx context.Context, f Filter) ([]entities.WeeklyPlan, error)
	// Delete removes the plan with its comments and reactions.
	Delete(ctx context.Context, id uint) error
}

package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"nippo/entities"
	fbrepo "nippo/pkg/feedback/repository"
	"nippo/pkg/logger"
	"nippo/pkg/metrics"
	"nippo/pkg/plan/repository"
	"nippo/pkg/plan/service"
	"nippo/pkg/session"
)

const dateLayout = "2006-01-02"

type PlanSvc struct {
	r        repository.PlanRepository
	feedback fbrepo.FeedbackRepository
}

func NewPlanService(r repository.PlanRepository, feedback fbrepo.FeedbackRepository) *PlanSvc {
	return &PlanSvc{r: r, feedback: feedback}
}

var _ service.PlanService = (*PlanSvc)(nil)

// EndOfWeek returns the Sunday closing the week that starts on the Monday start.
func EndOfWeek(start string) (string, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(start))
	if err != nil {
		return "", service.ErrInvalidStartDate
	}
	if d.Weekday() != time.Monday {
		return "", service.ErrStartNotMonday
	}
	return d.AddDate(0, 0, 6).Format(dateLayout), nil
}

func (s *PlanSvc) Create(ctx context.Context, actor session.Actor, in service.PlanInput) (*entities.WeeklyPlan, error) {
	if actor.UserID == 0 {
		return nil, service.ErrNoAuthor
	}
	end, err := EndOfWeek(in.StartDate)
	if err != nil {
		return nil, err
	}
	p := &entities.WeeklyPlan{
		UserID:    actor.UserID,
		StartDate: strings.TrimSpace(in.StartDate),
		EndDate:   end,
		Monday:    in.Monday,
		Tuesday:   in.Tuesday,
		Wednesday: in.Wednesday,
		Thursday:  in.Thursday,
		Friday:    in.Friday,
		Saturday:  in.Saturday,
		Sunday:    in.Sunday,
	}
	if err := s.r.Create(ctx, p); err != nil {
		logger.L.Error("plan.create_failed", zap.Uint("uid", actor.UserID), zap.Error(err))
		return nil, fmt.Errorf("insert weekly plan: %w", err)
	}
	metrics.Created.WithLabelValues("plan").Inc()
	logger.L.Info("plan.create", zap.Uint("uid", actor.UserID), zap.Uint("plan_id", p.ID), zap.String("start", p.StartDate))
	return p, nil
}

func (s *PlanSvc) Get(ctx context.Context, id uint) (*entities.WeeklyPlan, error) {
	p, err := s.r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find weekly plan: %w", err)
	}
	plans := []entities.WeeklyPlan{*p}
	s.fillCounts(ctx, plans)
	return &plans[0], nil
}

func (s *PlanSvc) List(ctx context.Context, f repository.Filter) []entities.WeeklyPlan {
	plans, err := s.r.List(ctx, f)
	if err != nil {
		logger.L.Error("plan.list_failed", zap.Any("filter", f), zap.Error(err))
		metrics.ReadFailures.WithLabelValues("plans").Inc()
		return []entities.WeeklyPlan{}
	}
	s.fillCounts(ctx, plans)
	return plans
}

func (s *PlanSvc) fillCounts(ctx context.Context, plans []entities.WeeklyPlan) {
	if len(plans) == 0 {
		return
	}
	ids := make([]uint, len(plans))
	for i := range plans {
		ids[i] = plans[i].ID
	}
	counts, err := s.feedback.Counts(ctx, entities.TargetPlan, ids)
	if err != nil {
		logger.L.Warn("plan.counts_failed", zap.Error(err))
		return
	}
	for i := range plans {
		c := counts[plans[i].ID]
		plans[i].Likes, plans[i].NiceFights, plans[i].CommentCount = c.Likes, c.NiceFights, c.Comments
	}
}

func (s *PlanSvc) Delete(ctx context.Context, actor session.Actor, id uint) error {
	p, err := s.r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find weekly plan: %w", err)
	}
	if !actor.CanModify(p.UserID) {
		return service.ErrForbidden
	}
	if err := s.r.Delete(ctx, id); err != nil {
		logger.L.Error("plan.delete_failed", zap.Uint("plan_id", id), zap.Error(err))
		return fmt.Errorf("delete weekly plan: %w", err)
	}
	logger.L.Info("plan.delete", zap.Uint("uid", actor.UserID), zap.Uint("plan_id", id))
	return nil
}

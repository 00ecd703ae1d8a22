package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nippo/entities"
	"nippo/pkg/plan/repository"
)

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) Create(ctx context.Context, p *entities.WeeklyPlan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *planRepo) FindByID(ctx context.Context, id uint) (*entities.WeeklyPlan, error) {
	var p entities.WeeklyPlan
	if err := r.db.WithContext(ctx).Preload("Author").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) List(ctx context.Context, f repository.Filter) ([]entities.WeeklyPlan, error) {
	q := r.db.WithContext(ctx).Model(&entities.WeeklyPlan{}).Preload("Author")
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.From != "" {
		q = q.Where("start_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("start_date <= ?", f.To)
	}
	var ps []entities.WeeklyPlan
	return ps, q.Order("id DESC").Find(&ps).Error
}

func (r *planRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", entities.TargetPlan, id).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", entities.TargetPlan, id).Delete(&entities.Reaction{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.WeeklyPlan{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nippo/entities"
	"nippo/pkg/report/repository"
)

type reportRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ReportRepository { return &reportRepo{db} }

func (r *reportRepo) Create(ctx context.Context, p *entities.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *reportRepo) Update(ctx context.Context, p *entities.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *reportRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entities.ReportImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", entities.TargetPost, id).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", entities.TargetPost, id).Delete(&entities.Reaction{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *reportRepo) FindByID(ctx context.Context, id uint) (*entities.Post, error) {
	var p entities.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *reportRepo) List(ctx context.Context, f repository.Filter) ([]entities.Post, error) {
	q := r.db.WithContext(ctx).Model(&entities.Post{}).Preload("Author")
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.From != "" {
		q = q.Where("execution_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("execution_date <= ?", f.To)
	}
	var out []entities.Post
	return out, q.Order("id DESC").Find(&out).Error
}

func (r *reportRepo) CreateImage(ctx context.Context, img *entities.ReportImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *reportRepo) FindImage(ctx context.Context, id uint) (*entities.ReportImage, error) {
	var img entities.ReportImage
	if err := r.db.WithContext(ctx).First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *reportRepo) ListImages(ctx context.Context, postID uint) ([]entities.ReportImage, error) {
	var out []entities.ReportImage
	return out, r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&out).Error
}

func (r *reportRepo) DeleteImage(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.ReportImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repositoryImp

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nippo/entities"
	"nippo/pkg/feedback/repository"
)

type feedbackRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FeedbackRepository { return &feedbackRepo{db} }

func (r *feedbackRepo) AddComment(ctx context.Context, c *entities.Comment, message string) (*entities.Notification, error) {
	var n *entities.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		authorID, err := targetAuthor(tx, c.TargetType, c.TargetID)
		if err != nil {
			return err
		}
		if err := tx.Omit("Author").Create(c).Error; err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		n = &entities.Notification{UserID: authorID, Message: message}
		if err := tx.Create(n).Error; err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func targetAuthor(tx *gorm.DB, targetType string, targetID uint) (uint, error) {
	var model any
	switch targetType {
	case entities.TargetPost:
		model = &entities.Post{}
	case entities.TargetPlan:
		model = &entities.WeeklyPlan{}
	default:
		return 0, repository.ErrTargetNotFound
	}
	var authors []uint
	if err := tx.Model(model).Where("id = ?", targetID).Pluck("user_id", &authors).Error; err != nil {
		return 0, fmt.Errorf("find target author: %w", err)
	}
	if len(authors) == 0 {
		return 0, repository.ErrTargetNotFound
	}
	return authors[0], nil
}

func (r *feedbackRepo) ListComments(ctx context.Context, targetType string, targetID uint) ([]entities.Comment, error) {
	var out []entities.Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("id ASC").Find(&out).Error
	return out, err
}

func (r *feedbackRepo) AddReaction(ctx context.Context, re *entities.Reaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := targetAuthor(tx, re.TargetType, re.TargetID); err != nil {
			return err
		}
		return tx.Create(re).Error
	})
}

func (r *feedbackRepo) Counts(ctx context.Context, targetType string, ids []uint) (map[uint]repository.Counts, error) {
	out := make(map[uint]repository.Counts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var reactions []struct {
		TargetID uint
		Type     entities.ReactionType
		N        int64
	}
	if err := r.db.WithContext(ctx).Model(&entities.Reaction{}).
		Select("target_id, type, COUNT(*) AS n").
		Where("target_type = ? AND target_id IN ?", targetType, ids).
		Group("target_id, type").Scan(&reactions).Error; err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}
	for _, row := range reactions {
		c := out[row.TargetID]
		switch row.Type {
		case entities.ReactionLike:
			c.Likes = row.N
		case entities.ReactionNiceFight:
			c.NiceFights = row.N
		}
		out[row.TargetID] = c
	}

	var comments []struct {
		TargetID uint
		N        int64
	}
	if err := r.db.WithContext(ctx).Model(&entities.Comment{}).
		Select("target_id, COUNT(*) AS n").
		Where("target_type = ? AND target_id IN ?", targetType, ids).
		Group("target_id").Scan(&comments).Error; err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	for _, row := range comments {
		c := out[row.TargetID]
		c.Comments = row.N
		out[row.TargetID] = c
	}
	return out, nil
}

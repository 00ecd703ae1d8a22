package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"nippo/entities"
	"nippo/pkg/notification/repository"
)

type notificationRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.NotificationRepository { return &notificationRepo{db} }

func (r *notificationRepo) ListByUser(ctx context.Context, userID uint) ([]entities.Notification, error) {
	var out []entities.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

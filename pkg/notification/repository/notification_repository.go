package repository

import (
	"context"

	"nippo/entities"
)

type NotificationRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]entities.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	// MarkAllRead flips is_read on the user's unread rows and returns how many changed.
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

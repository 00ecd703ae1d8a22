package service

import (
	"context"

	"nippo/entities"
)

type NotificationService interface {
	List(ctx context.Context, userID uint) []entities.Notification
	UnreadCount(ctx context.Context, userID uint) int64
	MarkAllRead(ctx context.Context, userID uint) error
}

package serviceImp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nippo/entities"
	"nippo/pkg/logger"
	"nippo/pkg/metrics"
	"nippo/pkg/notification/repository"
	"nippo/pkg/notification/service"
)

type notificationSvc struct{ r repository.NotificationRepository }

func NewNotificationService(r repository.NotificationRepository) service.NotificationService {
	return &notificationSvc{r}
}

func (s *notificationSvc) List(ctx context.Context, userID uint) []entities.Notification {
	out, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		logger.L.Error("notification.list_failed", zap.Uint("uid", userID), zap.Error(err))
		metrics.ReadFailures.WithLabelValues("notifications").Inc()
		return []entities.Notification{}
	}
	return out
}

func (s *notificationSvc) UnreadCount(ctx context.Context, userID uint) int64 {
	n, err := s.r.CountUnread(ctx, userID)
	if err != nil {
		logger.L.Error("notification.count_failed", zap.Uint("uid", userID), zap.Error(err))
		metrics.ReadFailures.WithLabelValues("notifications_unread").Inc()
		return 0
	}
	return n
}

func (s *notificationSvc) MarkAllRead(ctx context.Context, userID uint) error {
	n, err := s.r.MarkAllRead(ctx, userID)
	if err != nil {
		logger.L.Error("notification.mark_read_failed", zap.Uint("uid", userID), zap.Error(err))
		return fmt.Errorf("mark notifications read: %w", err)
	}
	logger.L.Debug("notification.mark_read", zap.Uint("uid", userID), zap.Int64("rows", n))
	return nil
}

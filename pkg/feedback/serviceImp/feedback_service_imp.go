package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nippo/entities"
	"nippo/pkg/feedback/repository"
	"nippo/pkg/feedback/service"
	"nippo/pkg/logger"
	"nippo/pkg/metrics"
	"nippo/pkg/session"
)

type feedbackSvc struct{ r repository.FeedbackRepository }

func NewFeedbackService(r repository.FeedbackRepository) service.FeedbackService {
	return &feedbackSvc{r}
}

// AddComment notifies the target's author even when the commenter is that author.
func (s *feedbackSvc) AddComment(ctx context.Context, actor session.Actor, targetType string, targetID uint, content string) (*entities.Comment, error) {
	if !entities.ValidTarget(targetType) {
		return nil, service.ErrInvalidTarget
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, service.ErrEmptyComment
	}

	c := &entities.Comment{UserID: actor.UserID, TargetType: targetType, TargetID: targetID, Content: content}
	n, err := s.r.AddComment(ctx, c, commentMessage(actor.Name, targetType))
	if err != nil {
		logger.L.Error("comment.create_failed",
			zap.Uint("uid", actor.UserID), zap.String("target_type", targetType), zap.Uint("target_id", targetID), zap.Error(err))
		return nil, err
	}
	metrics.Created.WithLabelValues("comment").Inc()
	logger.L.Info("comment.create",
		zap.Uint("uid", actor.UserID), zap.Uint("comment_id", c.ID), zap.Uint("notify_uid", n.UserID))
	return c, nil
}

func commentMessage(name, targetType string) string {
	if targetType == entities.TargetPlan {
		return fmt.Sprintf("%sさんがあなたの週間予定にコメントしました", name)
	}
	return fmt.Sprintf("%sさんがあなたの日報にコメントしました", name)
}

func (s *feedbackSvc) ListComments(ctx context.Context, targetType string, targetID uint) []entities.Comment {
	out, err := s.r.ListComments(ctx, targetType, targetID)
	if err != nil {
		logger.L.Error("comment.list_failed", zap.String("target_type", targetType), zap.Uint("target_id", targetID), zap.Error(err))
		metrics.ReadFailures.WithLabelValues("comments").Inc()
		return []entities.Comment{}
	}
	return out
}

func (s *feedbackSvc) AddReaction(ctx context.Context, actor session.Actor, targetType string, targetID uint, t entities.ReactionType) (*entities.Reaction, error) {
	if !entities.ValidTarget(targetType) {
		return nil, service.ErrInvalidTarget
	}
	if !t.Valid() {
		return nil, service.ErrInvalidReactionType
	}
	re := &entities.Reaction{UserID: actor.UserID, TargetType: targetType, TargetID: targetID, Type: t}
	if err := s.r.AddReaction(ctx, re); err != nil {
		logger.L.Error("reaction.create_failed", zap.Uint("uid", actor.UserID), zap.Error(err))
		return nil, fmt.Errorf("insert reaction: %w", err)
	}
	metrics.Created.WithLabelValues("reaction").Inc()
	return re, nil
}

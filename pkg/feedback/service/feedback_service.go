package service

import (
	"context"
	"errors"

	"nippo/entities"
	"nippo/pkg/feedback/repository"
	"nippo/pkg/session"
)

var (
	ErrInvalidReactionType = errors.New("reaction type must be like or nice_fight")
	ErrInvalidTarget       = errors.New("target type must be post or plan")
	ErrEmptyComment        = errors.New("comment content is required")
	ErrTargetNotFound      = repository.ErrTargetNotFound
)

type FeedbackService interface {
	AddComment(ctx context.Context, actor session.Actor, targetType string, targetID uint, content string) (*entities.Comment, error)
	ListComments(ctx context.Context, targetType string, targetID uint) []entities.Comment
	AddReaction(ctx context.Context, actor session.Actor, targetType string, targetID uint, t entities.ReactionType) (*entities.Reaction, error)
}

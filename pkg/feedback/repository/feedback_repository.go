package repository

import (
	"context"
	"errors"

	"nippo/entities"
)

var ErrTargetNotFound = errors.New("comment target not found")

// Counts is the reaction and comment tally of one post or plan.
type Counts struct {
	Likes      int64
	NiceFights int64
	Comments   int64
}

type FeedbackRepository interface {
	// AddComment stores the comment and one notification for the target's
	// author in a single transaction; neither row exists if either insert fails.
	AddComment(ctx context.Context, c *entities.Comment, message string) (*entities.Notification, error)
	ListComments(ctx context.Context, targetType string, targetID uint) ([]entities.Comment, error)
	AddReaction(ctx context.Context, r *entities.Reaction) error
	Counts(ctx context.Context, targetType string, ids []uint) (map[uint]Counts, error)
}

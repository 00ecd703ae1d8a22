package repository

import (
	"context"

	"nippo/entities"
)

// Filter narrows a listing by author and by execution date (inclusive,
// YYYY-MM-DD). Zero values mean no restriction.
type Filter struct {
	UserID uint
	From   string
	To     string
}

type ReportRepository interface {
	Create(ctx context.Context, p *entities.Post) error
	Update(ctx context.Context, p *entities.Post) error
	// Delete removes the post with its images, comments and reactions.
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.Post, error)
	List(ctx context.Context, f Filter) ([]entities.Post, error)

	CreateImage(ctx context.Context, img *entities.ReportImage) error
	FindImage(ctx context.Context, id uint) (*entities.ReportImage, error)
	ListImages(ctx context.Context, postID uint) ([]entities.ReportImage, error)
	DeleteImage(ctx context.Context, id uint) error
}

package service

import (
	"context"
	"errors"

	"nippo/entities"
	"nippo/pkg/report/repository"
	"nippo/pkg/session"
)

var (
	ErrNotFound     = errors.New("report not found")
	ErrForbidden    = errors.New("only the author or an admin may change this report")
	ErrNoAuthor     = errors.New("report author is required")
	ErrDateRequired = errors.New("execution_date is required")
	ErrInvalidDate  = errors.New("execution_date must be YYYY-MM-DD")
	ErrNotImage     = errors.New("uploaded file is not an image")
)

type ReportInput struct {
	ExecutionDate string                  `json:"execution_date"`
	Category      string                  `json:"category"`
	Location      string                  `json:"location"`
	Content       string                  `json:"content"`
	Remarks       string                  `json:"remarks"`
	ImageData     string                  `json:"image_data"`
	VisitedStores []entities.VisitedStore `json:"visited_stores"`
}

type ReportService interface {
	Create(ctx context.Context, actor session.Actor, in ReportInput) (*entities.Post, error)
	Update(ctx context.Context, actor session.Actor, id uint, in ReportInput) (*entities.Post, error)
	Delete(ctx context.Context, actor session.Actor, id uint) error
	Get(ctx context.Context, id uint) (*entities.Post, error)
	// List never fails; storage errors are logged and yield an empty slice.
	List(ctx context.Context, f repository.Filter) []entities.Post

	AddImage(ctx context.Context, actor session.Actor, postID uint, fileName, mimeType string, data []byte) (*entities.ReportImage, error)
	ListImages(ctx context.Context, postID uint) []entities.ReportImage
	DeleteImage(ctx context.Context, actor session.Actor, id uint) error
}

package serviceImp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"nippo/entities"
	fbrepo "nippo/pkg/feedback/repository"
	"nippo/pkg/logger"
	"nippo/pkg/metrics"
	"nippo/pkg/report/repository"
	"nippo/pkg/report/service"
	"nippo/pkg/session"
)

type reportSvc struct {
	r        repository.ReportRepository
	feedback fbrepo.FeedbackRepository
}

func NewReportService(r repository.ReportRepository, feedback fbrepo.FeedbackRepository) service.ReportService {
	return &reportSvc{r: r, feedback: feedback}
}

func validate(actor session.Actor, in service.ReportInput) error {
	if actor.UserID == 0 {
		return service.ErrNoAuthor
	}
	if strings.TrimSpace(in.ExecutionDate) == "" {
		return service.ErrDateRequired
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(in.ExecutionDate)); err != nil {
		return service.ErrInvalidDate
	}
	return nil
}

func apply(p *entities.Post, in service.ReportInput) {
	p.ExecutionDate = strings.TrimSpace(in.ExecutionDate)
	p.Category = in.Category
	p.Location = in.Location
	p.Content = in.Content
	p.Remarks = in.Remarks
	p.ImageData = in.ImageData
	p.VisitedStores = in.VisitedStores
}

func (s *reportSvc) Create(ctx context.Context, actor session.Actor, in service.ReportInput) (*entities.Post, error) {
	if err := validate(actor, in); err != nil {
		return nil, err
	}
	p := &entities.Post{UserID: actor.UserID, PostDate: time.Now()}
	apply(p, in)
	if err := s.r.Create(ctx, p); err != nil {
		logger.L.Error("report.create_failed", zap.Uint("uid", actor.UserID), zap.Error(err))
		return nil, fmt.Errorf("insert report: %w", err)
	}
	metrics.Created.WithLabelValues("report").Inc()
	logger.L.Info("report.create", zap.Uint("uid", actor.UserID), zap.Uint("post_id", p.ID), zap.String("date", p.ExecutionDate))
	return p, nil
}

func (s *reportSvc) Update(ctx context.Context, actor session.Actor, id uint, in service.ReportInput) (*entities.Post, error) {
	if err := validate(actor, in); err != nil {
		return nil, err
	}
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(p.UserID) {
		return nil, service.ErrForbidden
	}
	apply(p, in)
	if err := s.r.Update(ctx, p); err != nil {
		logger.L.Error("report.update_failed", zap.Uint("post_id", id), zap.Error(err))
		return nil, fmt.Errorf("update report: %w", err)
	}
	logger.L.Info("report.update", zap.Uint("uid", actor.UserID), zap.Uint("post_id", id))
	return p, nil
}

func (s *reportSvc) Delete(ctx context.Context, actor session.Actor, id uint) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(p.UserID) {
		return service.ErrForbidden
	}
	if err := s.r.Delete(ctx, id); err != nil {
		logger.L.Error("report.delete_failed", zap.Uint("post_id", id), zap.Error(err))
		return fmt.Errorf("delete report: %w", err)
	}
	logger.L.Info("report.delete", zap.Uint("uid", actor.UserID), zap.Uint("post_id", id))
	return nil
}

func (s *reportSvc) Get(ctx context.Context, id uint) (*entities.Post, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	posts := []entities.Post{*p}
	s.fillCounts(ctx, posts)
	return &posts[0], nil
}

func (s *reportSvc) find(ctx context.Context, id uint) (*entities.Post, error) {
	p, err := s.r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	return p, nil
}

func (s *reportSvc) List(ctx context.Context, f repository.Filter) []entities.Post {
	posts, err := s.r.List(ctx, f)
	if err != nil {
		logger.L.Error("report.list_failed", zap.Any("filter", f), zap.Error(err))
		metrics.ReadFailures.WithLabelValues("reports").Inc()
		return []entities.Post{}
	}
	s.fillCounts(ctx, posts)
	return posts
}

func (s *reportSvc) fillCounts(ctx context.Context, posts []entities.Post) {
	if len(posts) == 0 {
		return
	}
	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	counts, err := s.feedback.Counts(ctx, entities.TargetPost, ids)
	if err != nil {
		// counts are decoration; the listing itself is still valid
		logger.L.Warn("report.counts_failed", zap.Error(err))
		return
	}
	for i := range posts {
		c := counts[posts[i].ID]
		posts[i].Likes, posts[i].NiceFights, posts[i].CommentCount = c.Likes, c.NiceFights, c.Comments
	}
}

func (s *reportSvc) AddImage(ctx context.Context, actor session.Actor, postID uint, fileName, mimeType string, data []byte) (*entities.ReportImage, error) {
	p, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(p.UserID) {
		return nil, service.ErrForbidden
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, service.ErrNotImage
	}
	img := &entities.ReportImage{
		PostID:   postID,
		FileName: fileName,
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}
	if err := s.r.CreateImage(ctx, img); err != nil {
		logger.L.Error("image.create_failed", zap.Uint("post_id", postID), zap.Error(err))
		return nil, fmt.Errorf("insert image: %w", err)
	}
	metrics.Created.WithLabelValues("image").Inc()
	return img, nil
}

func (s *reportSvc) ListImages(ctx context.Context, postID uint) []entities.ReportImage {
	out, err := s.r.ListImages(ctx, postID)
	if err != nil {
		logger.L.Error("image.list_failed", zap.Uint("post_id", postID), zap.Error(err))
		metrics.ReadFailures.WithLabelValues("images").Inc()
		return []entities.ReportImage{}
	}
	return out
}

func (s *reportSvc) DeleteImage(ctx context.Context, actor session.Actor, id uint) error {
	img, err := s.r.FindImage(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find image: %w", err)
	}
	if !actor.IsAdmin {
		p, err := s.find(ctx, img.PostID)
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			return err
		}
		if p != nil && p.UserID != actor.UserID {
			return service.ErrForbidden
		}
	}
	if err := s.r.DeleteImage(ctx, id); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	logger.L.Info("image.delete", zap.Uint("uid", actor.UserID), zap.Uint("image_id", id))
	return nil
}

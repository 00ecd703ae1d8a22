package serviceImp

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"nippo/entities"
	"nippo/pkg/export"
	"nippo/pkg/logger"
	"nippo/pkg/metrics"
	"nippo/pkg/store/repository"
	"nippo/pkg/store/service"
)

type storeSvc struct{ r repository.StoreRepository }

func NewStoreService(r repository.StoreRepository) service.StoreService { return &storeSvc{r} }

func (s *storeSvc) Import(ctx context.Context, r io.Reader) (*service.ImportResult, error) {
	recs, _, err := export.ConvertExcelToJSON(r)
	if err != nil {
		logger.L.Warn("store.import_rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", service.ErrBadSpreadsheet, err)
	}
	stores := make([]entities.Store, len(recs))
	for i, rec := range recs {
		stores[i] = rec.Store()
	}
	if err := s.r.Upsert(ctx, stores); err != nil {
		logger.L.Error("store.import_failed", zap.Int("rows", len(stores)), zap.Error(err))
		return nil, fmt.Errorf("save stores: %w", err)
	}
	metrics.Created.WithLabelValues("store").Add(float64(len(stores)))
	logger.L.Info("store.import", zap.Int("rows", len(stores)))
	return &service.ImportResult{Imported: len(recs), Records: recs}, nil
}

func (s *storeSvc) List(ctx context.Context) []entities.Store {
	out, err := s.r.List(ctx)
	if err != nil {
		logger.L.Error("store.list_failed", zap.Error(err))
		metrics.ReadFailures.WithLabelValues("stores").Inc()
		return []entities.Store{}
	}
	return out
}

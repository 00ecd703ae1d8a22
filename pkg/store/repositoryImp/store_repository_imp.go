package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nippo/entities"
	"nippo/pkg/store/repository"
)

const upsertBatch = 200

type storeRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.StoreRepository { return &storeRepo{db} }

func (r *storeRepo) Upsert(ctx context.Context, stores []entities.Store) error {
	if len(stores) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "postal_code", "address", "department_code", "staff_code", "staff_name", "updated_at"}),
		}).CreateInBatches(stores, upsertBatch).Error
	})
}

func (r *storeRepo) List(ctx context.Context) ([]entities.Store, error) {
	var out []entities.Store
	return out, r.db.WithContext(ctx).Order("code ASC").Find(&out).Error
}

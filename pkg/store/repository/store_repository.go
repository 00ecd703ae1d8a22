package repository

import (
	"context"

	"nippo/entities"
)

type StoreRepository interface {
	// Upsert writes all stores in one transaction, replacing rows with the same code.
	Upsert(ctx context.Context, stores []entities.Store) error
	List(ctx context.Context) ([]entities.Store, error)
}

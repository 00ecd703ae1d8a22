package service

import (
	"context"
	"errors"
	"io"

	"nippo/entities"
	"nippo/pkg/export"
)

var ErrBadSpreadsheet = errors.New("store spreadsheet rejected")

type ImportResult struct {
	Imported int                  `json:"imported"`
	Records  []export.StoreRecord `json:"records"`
}

type StoreService interface {
	// Import parses the xlsx store master and upserts its rows. Nothing is
	// written unless the whole sheet parses.
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
	List(ctx context.Context) []entities.Store
}

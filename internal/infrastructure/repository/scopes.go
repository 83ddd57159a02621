package repository

import (
	"context"
	"errors"

	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"gorm.io/gorm"
)

type ctxKey string

// txKey carries the active *gorm.DB transaction
const txKey ctxKey = "db_tx"

// AdminScope returns a GORM scope that filters by owning admin
func AdminScope(adminID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("admin_id = ?", adminID)
	}
}

// WindowScope restricts column to the half-open window [Start, End)
func WindowScope(column string, w *storagetime.Window) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if w == nil {
			return db
		}
		return db.Where(column+" >= ? AND "+column+" < ?", w.Start, w.End)
	}
}

// conn returns the transaction stored in ctx, or db bound to ctx
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// translate maps driver errors onto domain errors
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicate
	}
	return err
}

package repository

import (
	"context"
	"fmt"

	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/logger"
	"gorm.io/gorm"
)

type transactor struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewTransactor creates a transaction runner over db
func NewTransactor(db *gorm.DB, log *logger.Logger) domainRepo.Transactor {
	return &transactor{db: db, logger: log}
}

// WithTx wraps fn in a transaction. If ctx already carries one it is reused
// and neither committed nor rolled back here.
func (t *transactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}

	// gorm rolls back on error and on panic
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
	if err != nil {
		t.logger.Debugw("rolled back transaction", "error", err)
		return fmt.Errorf("transaction: %w", err)
	}
	return nil
}

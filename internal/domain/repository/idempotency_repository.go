package repository

import (
	"context"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses per (admin, key)
type IdempotencyRepository interface {
	// Find returns the key if it is still live at now, or nil
	Find(ctx context.Context, adminID int64, key string, now time.Time) (*entity.IdempotencyKey, error)
	// Save returns ErrDuplicate when a live key already exists
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Purge deletes keys that expired before the given instant
	Purge(ctx context.Context, before time.Time) (int64, error)
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Find(ctx context.Context, adminID int64, key string, now time.Time) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := conn(ctx, r.db).
		Scopes(AdminScope(adminID)).
		Where("idempotency_key = ? AND expires_at > ?", key, now).
		Take(&ikey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ikey, nil
}

// Save inserts the key. An expired row holding the same (admin, key) is
// cleared first so the unique index only ever guards live keys.
func (r *idempotencyRepository) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	db := conn(ctx, r.db)
	if err := db.Scopes(AdminScope(ikey.AdminID)).
		Where("idempotency_key = ? AND expires_at <= ?", ikey.Key, ikey.CreatedAt).
		Delete(&entity.IdempotencyKey{}).Error; err != nil {
		return err
	}
	return translate(db.Create(ikey).Error)
}

func (r *idempotencyRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	result := conn(ctx, r.db).Where("expires_at <= ?", before).Delete(&entity.IdempotencyKey{})
	return result.RowsAffected, result.Error
}

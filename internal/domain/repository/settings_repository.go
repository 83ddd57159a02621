package repository

import (
	"context"

	"github.com/sangkips/billbook-api/internal/domain/entity"
)

// TaxSettingsRepository defines the interface for per-admin tax details
type TaxSettingsRepository interface {
	GetByAdminID(ctx context.Context, adminID int64) (*entity.TaxSettings, error)
	// Save replaces the admin's single settings row
	Save(ctx context.Context, settings *entity.TaxSettings) error
}

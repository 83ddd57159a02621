package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type taxSettingsRepository struct {
	db *gorm.DB
}

// NewTaxSettingsRepository creates a new tax settings repository
func NewTaxSettingsRepository(db *gorm.DB) repository.TaxSettingsRepository {
	return &taxSettingsRepository{db: db}
}

// GetByAdminID retrieves settings by admin ID
func (r *taxSettingsRepository) GetByAdminID(ctx context.Context, adminID int64) (*entity.TaxSettings, error) {
	var settings entity.TaxSettings
	err := conn(ctx, r.db).Where("admin_id = ?", adminID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Save upserts the admin's settings row
func (r *taxSettingsRepository) Save(ctx context.Context, settings *entity.TaxSettings) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "admin_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tax_type", "tax_number", "tax_rate", "show_tax_rate", "show_tax_number", "updated_at",
		}),
	}).Create(settings).Error
}

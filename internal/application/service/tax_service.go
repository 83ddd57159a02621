package service

import (
	"context"
	"strings"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// TaxService handles the per-admin tax details printed on bills
type TaxService struct {
	settingsRepo repository.TaxSettingsRepository
	logger       *logger.Logger
}

// NewTaxService creates a new tax service
func NewTaxService(settingsRepo repository.TaxSettingsRepository, log *logger.Logger) *TaxService {
	return &TaxService{settingsRepo: settingsRepo, logger: log}
}

// GetTaxDetails returns the stored settings, or the defaults if the admin
// has never saved any. Defaults are not persisted.
func (s *TaxService) GetTaxDetails(ctx context.Context, adminID int64) (*entity.TaxSettings, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetByAdminID(ctx, adminID)
	if err != nil {
		return nil, storeFailure(s.logger, "tax.get", adminID, err)
	}
	if settings == nil {
		settings = entity.DefaultTaxSettings(adminID)
	}
	return settings, nil
}

// SaveTaxDetailsInput represents the save tax details input. The show
// flags default to true when omitted.
type SaveTaxDetailsInput struct {
	AdminID       int64
	TaxType       string
	TaxNumber     string
	TaxRate       *decimal.Decimal
	ShowTaxRate   *bool
	ShowTaxNumber *bool
}

// SaveTaxDetails replaces the admin's tax details
func (s *TaxService) SaveTaxDetails(ctx context.Context, input *SaveTaxDetailsInput) (*entity.TaxSettings, error) {
	var errs fieldErrors
	errs.requiredID("adminId", input.AdminID)
	errs.nonNegative("taxRate", input.TaxRate)
	if err := errs.err(); err != nil {
		return nil, err
	}

	settings := &entity.TaxSettings{
		AdminID:       input.AdminID,
		TaxType:       strings.TrimSpace(input.TaxType),
		TaxNumber:     strings.TrimSpace(input.TaxNumber),
		TaxRate:       *input.TaxRate,
		ShowTaxRate:   input.ShowTaxRate == nil || *input.ShowTaxRate,
		ShowTaxNumber: input.ShowTaxNumber == nil || *input.ShowTaxNumber,
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, storeFailure(s.logger, "tax.save", input.AdminID, err)
	}
	return settings, nil
}

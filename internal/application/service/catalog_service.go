package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// CatalogService manages the services an admin can put on a bill
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	logger      *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository, log *logger.Logger) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo, logger: log}
}

// ServiceInput represents the add and edit service input. ID is ignored on add.
type ServiceInput struct {
	ID      int64
	AdminID int64
	Name    string
	Price   *decimal.Decimal
}

func (in *ServiceInput) validate(withID bool) error {
	var errs fieldErrors
	if withID {
		errs.requiredID("id", in.ID)
	}
	errs.requiredID("admin_id", in.AdminID)
	errs.required("name", in.Name)
	errs.nonNegative("price", in.Price)
	return errs.err()
}

// AddService creates an active catalog entry
func (s *CatalogService) AddService(ctx context.Context, input *ServiceInput) (*entity.Service, error) {
	if err := input.validate(false); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)

	existing, err := s.serviceRepo.GetActiveByName(ctx, input.AdminID, name)
	if err != nil {
		return nil, storeFailure(s.logger, "service.add", input.AdminID, err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Service already exists")
	}

	svc := &entity.Service{
		AdminID: input.AdminID,
		Name:    name,
		Price:   *input.Price,
		Status:  enum.ServiceStatusActive,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, storeFailure(s.logger, "service.add", input.AdminID, err)
	}
	return svc, nil
}

// ListActive lists the services currently offered
func (s *CatalogService) ListActive(ctx context.Context, adminID int64) ([]entity.Service, error) {
	return s.list(ctx, adminID, enum.ServiceStatusActive)
}

// ListDeleted lists removed services that can be restored
func (s *CatalogService) ListDeleted(ctx context.Context, adminID int64) ([]entity.Service, error) {
	return s.list(ctx, adminID, enum.ServiceStatusDeleted)
}

func (s *CatalogService) list(ctx context.Context, adminID int64, status enum.ServiceStatus) ([]entity.Service, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	services, err := s.serviceRepo.ListByStatus(ctx, adminID, status)
	if err != nil {
		return nil, storeFailure(s.logger, "service.list", adminID, err)
	}
	if services == nil {
		services = []entity.Service{}
	}
	return services, nil
}

// RemoveService soft-deletes a service
func (s *CatalogService) RemoveService(ctx context.Context, id, adminID int64) error {
	return s.setStatus(ctx, id, adminID, enum.ServiceStatusDeleted)
}

// RestoreService makes a removed service active again
func (s *CatalogService) RestoreService(ctx context.Context, id, adminID int64) error {
	return s.setStatus(ctx, id, adminID, enum.ServiceStatusActive)
}

func (s *CatalogService) setStatus(ctx context.Context, id, adminID int64, status enum.ServiceStatus) error {
	var errs fieldErrors
	errs.requiredID("service_id", id)
	errs.requiredID("admin_id", adminID)
	if err := errs.err(); err != nil {
		return err
	}

	affected, err := s.serviceRepo.SetStatus(ctx, id, adminID, status)
	if err != nil {
		return storeFailure(s.logger, "service.set_status", adminID, err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("Service")
	}
	return nil
}

// EditService renames and reprices a service. Bills already issued keep
// the name and price they were created with.
func (s *CatalogService) EditService(ctx context.Context, input *ServiceInput) (*entity.Service, error) {
	if err := input.validate(true); err != nil {
		return nil, err
	}

	affected, err := s.serviceRepo.Update(ctx, input.ID, input.AdminID, strings.TrimSpace(input.Name), *input.Price)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Service already exists")
		}
		return nil, storeFailure(s.logger, "service.edit", input.AdminID, err)
	}
	if affected == 0 {
		return nil, apperror.NewNotFoundError("Service")
	}

	svc, err := s.serviceRepo.GetByID(ctx, input.ID, input.AdminID)
	if err != nil {
		return nil, storeFailure(s.logger, "service.edit", input.AdminID, err)
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

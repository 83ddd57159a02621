package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service catalog repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *entity.Service) error {
	return translate(conn(ctx, r.db).Create(svc).Error)
}

func (r *serviceRepository) GetByID(ctx context.Context, id, adminID int64) (*entity.Service, error) {
	var svc entity.Service
	err := conn(ctx, r.db).
		Scopes(AdminScope(adminID)).
		First(&svc, "service_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) GetActiveByName(ctx context.Context, adminID int64, name string) (*entity.Service, error) {
	var svc entity.Service
	err := conn(ctx, r.db).
		Scopes(AdminScope(adminID)).
		Where("service_name = ? AND status = ?", name, enum.ServiceStatusActive).
		First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) ListByStatus(ctx context.Context, adminID int64, status enum.ServiceStatus) ([]entity.Service, error) {
	var services []entity.Service
	err := conn(ctx, r.db).
		Scopes(AdminScope(adminID)).
		Where("status = ?", status).
		Order("service_name ASC").
		Find(&services).Error
	return services, err
}

func (r *serviceRepository) SetStatus(ctx context.Context, id, adminID int64, status enum.ServiceStatus) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Service{}).
		Where("service_id = ? AND admin_id = ?", id, adminID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *serviceRepository) Update(ctx context.Context, id, adminID int64, name string, price decimal.Decimal) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Service{}).
		Where("service_id = ? AND admin_id = ?", id, adminID).
		Updates(map[string]interface{}{
			"service_name": name,
			"price":        price,
		})
	return result.RowsAffected, translate(result.Error)
}

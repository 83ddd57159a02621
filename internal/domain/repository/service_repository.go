package repository

import (
	"context"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ServiceRepository defines the interface for the service catalog
type ServiceRepository interface {
	Create(ctx context.Context, svc *entity.Service) error
	GetByID(ctx context.Context, id, adminID int64) (*entity.Service, error)
	GetActiveByName(ctx context.Context, adminID int64, name string) (*entity.Service, error)
	ListByStatus(ctx context.Context, adminID int64, status enum.ServiceStatus) ([]entity.Service, error)
	SetStatus(ctx context.Context, id, adminID int64, status enum.ServiceStatus) (int64, error)
	Update(ctx context.Context, id, adminID int64, name string, price decimal.Decimal) (int64, error)
}

package entity

import (
	"time"

	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Service is a catalog entry an admin can bill for. Bills copy name and
// price at billing time, so later edits never change issued bills.
type Service struct {
	ID        int64              `gorm:"column:service_id;primaryKey;autoIncrement" json:"service_id"`
	AdminID   int64              `gorm:"not null;index" json:"admin_id"`
	Name      string             `gorm:"column:service_name;size:255;not null" json:"service_name"`
	Price     decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Status    enum.ServiceStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// IsActive reports whether the service is offered
func (s *Service) IsActive() bool {
	return s.Status == enum.ServiceStatusActive
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}

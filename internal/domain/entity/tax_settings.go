package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxSettings holds the per-admin tax details printed on bills
type TaxSettings struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	AdminID       int64           `gorm:"not null;uniqueIndex" json:"admin_id"`
	TaxType       string          `gorm:"size:50" json:"taxType"`
	TaxNumber     string          `gorm:"size:100" json:"taxNumber"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"taxRate"`
	ShowTaxRate   bool            `gorm:"not null" json:"showTaxRate"`
	ShowTaxNumber bool            `gorm:"not null" json:"showTaxNumber"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// DefaultTaxSettings is what an admin sees before saving anything
func DefaultTaxSettings(adminID int64) *TaxSettings {
	return &TaxSettings{
		AdminID:       adminID,
		TaxRate:       decimal.Zero,
		ShowTaxRate:   true,
		ShowTaxNumber: true,
	}
}

// TableName returns the table name for the TaxSettings model
func (TaxSettings) TableName() string {
	return "tax_details"
}

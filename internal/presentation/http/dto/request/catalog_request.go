package request

import "github.com/shopspring/decimal"

// AddServiceRequest represents a catalog service creation request
type AddServiceRequest struct {
	AdminID int64            `json:"admin_id"`
	Name    string           `json:"name" binding:"max=255"`
	Price   *decimal.Decimal `json:"price"`
}

// EditServiceRequest represents a catalog service edit
type EditServiceRequest struct {
	ID      int64            `json:"id"`
	AdminID int64            `json:"admin_id"`
	Name    string           `json:"name" binding:"max=255"`
	Price   *decimal.Decimal `json:"price"`
}

// ServiceStatusRequest identifies a service to remove or restore
type ServiceStatusRequest struct {
	ServiceID int64 `json:"service_id" binding:"required,gt=0"`
	AdminID   int64 `json:"admin_id"`
}

// SaveTaxDetailsRequest represents the tax settings form
type SaveTaxDetailsRequest struct {
	AdminID       int64            `json:"adminId"`
	TaxType       string           `json:"taxType" binding:"max=50"`
	TaxNumber     string           `json:"taxNumber" binding:"max=100"`
	TaxRate       *decimal.Decimal `json:"taxRate"`
	ShowTaxRate   *bool            `json:"showTaxRate"`
	ShowTaxNumber *bool            `json:"showTaxNumber"`
}

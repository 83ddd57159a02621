package request

import (
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one service on a bill
type LineItemRequest struct {
	Name  string          `json:"name" binding:"required,max=255"`
	Price decimal.Decimal `json:"price"`
}

// TaxDetailsRequest describes whether tax applies to a new bill
type TaxDetailsRequest struct {
	WasTaxApplied bool            `json:"wasTaxApplied"`
	TaxRate       decimal.Decimal `json:"taxRate"`
}

// CreateBillRequest represents a bill creation request
type CreateBillRequest struct {
	AdminID       int64              `json:"admin_id"`
	CustomerName  string             `json:"customer_name" binding:"max=255"`
	Contact       string             `json:"contact" binding:"max=50"`
	ServiceTaken  []LineItemRequest  `json:"service_taken" binding:"dive"`
	OtherCharges  *decimal.Decimal   `json:"other_charges"`
	Discount      *decimal.Decimal   `json:"discount"`
	Received      *decimal.Decimal   `json:"received"`
	TotalBill     *decimal.Decimal   `json:"total_bill"`
	Date          string             `json:"date"`
	TaxDetails    *TaxDetailsRequest `json:"tax_details"`
	PaymentMethod string             `json:"payment_method"`
}

// UpdateBillRequest represents a bill update request. Received and balance
// are changed through the payment endpoint only.
type UpdateBillRequest struct {
	AdminID       int64             `json:"admin_id"`
	CustomerName  string            `json:"customer_name" binding:"max=255"`
	Contact       string            `json:"contact" binding:"max=50"`
	ServiceTaken  []LineItemRequest `json:"service_taken" binding:"dive"`
	OtherCharges  *decimal.Decimal  `json:"other_charges"`
	Discount      *decimal.Decimal  `json:"discount"`
	TotalBill     *decimal.Decimal  `json:"total_bill"`
	TaxRate       *decimal.Decimal  `json:"tax_rate"`
	PaymentMethod string            `json:"payment_method"`
	Date          *string           `json:"date"`
}

// UpdatePaymentRequest represents a payment update
type UpdatePaymentRequest struct {
	AdminID  int64            `json:"admin_id"`
	Received *decimal.Decimal `json:"received"`
	Balance  *decimal.Decimal `json:"balance"`
}

// DeleteBillRequest carries the owner of the bill being deleted
type DeleteBillRequest struct {
	AdminID int64 `json:"admin_id"`
}

// RenameCustomerRequest represents a bulk customer rename
type RenameCustomerRequest struct {
	AdminID      int64  `json:"admin_id"`
	OldContact   string `json:"old_contact" binding:"max=50"`
	NewContact   string `json:"new_contact" binding:"max=50"`
	CustomerName string `json:"customer_name" binding:"max=255"`
}

// ListBillsRequest represents bill list query parameters
type ListBillsRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

// LineItems converts the request items to the stored snapshot
func LineItems(items []LineItemRequest) entity.LineItems {
	out := make(entity.LineItems, 0, len(items))
	for _, item := range items {
		out = append(out, entity.LineItem{Name: item.Name, Price: item.Price})
	}
	return out
}

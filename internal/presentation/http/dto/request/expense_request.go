package request

import "github.com/shopspring/decimal"

// AddExpenseRequest represents an expense creation request
type AddExpenseRequest struct {
	AdminID       int64            `json:"adminId"`
	PayeeName     string           `json:"payeeName" binding:"max=255"`
	ExpenseName   string           `json:"expenseName" binding:"max=255"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod string           `json:"paymentMethod" binding:"max=50"`
	Status        string           `json:"status" binding:"max=50"`
	Description   string           `json:"description" binding:"max=1000"`
	Date          string           `json:"date"`
}

// RenameExpenseRequest represents an expense rename
type RenameExpenseRequest struct {
	AdminID     int64  `json:"adminId"`
	ExpenseName string `json:"expenseName" binding:"max=255"`
}

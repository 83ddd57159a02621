package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultExpensePaymentMethod = "Cash"
	DefaultExpenseStatus        = "Paid"
)

// ExpenseCategories is the fixed list offered to the expense form
var ExpenseCategories = []string{
	"Decor",
	"Electricity",
	"Equipment Maintenance",
	"Furniture",
	"Insurance",
	"Internet",
	"Marketing & Advertising",
	"Phone Bills",
	"Product Purchase",
	"Rent",
	"Software Subscription",
	"Taxes & Permits",
	"Training",
}

// Expense is money paid out by an admin. CreatedAt is plain UTC.
type Expense struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID       int64           `gorm:"not null;index;uniqueIndex:idx_expenses_admin_name,priority:1" json:"admin_id"`
	PayeeName     string          `gorm:"size:255;not null" json:"payee_name"`
	ExpenseName   string          `gorm:"size:255;not null" json:"expense_name"`
	NameKey       string          `gorm:"size:255;not null;uniqueIndex:idx_expenses_admin_name,priority:2" json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:50;not null;default:'Cash'" json:"payment_method"`
	Status        string          `gorm:"size:50;not null;default:'Paid'" json:"status"`
	Description   string          `gorm:"type:text" json:"description"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpenseNameKey is the case-insensitive uniqueness key for an expense name
func ExpenseNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BeforeSave keeps NameKey in step with ExpenseName
func (e *Expense) BeforeSave(tx *gorm.DB) error {
	e.NameKey = ExpenseNameKey(e.ExpenseName)
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

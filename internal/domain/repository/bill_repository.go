package repository

import (
	"context"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/pkg/pagination"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

// BillRepository defines the interface for bill data operations.
// Mutations are always scoped by (bill_id, admin_id) and report the number
// of rows they touched; zero means the bill does not exist for that admin.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, billID int64) (*entity.Bill, error)
	GetForAdmin(ctx context.Context, billID, adminID int64) (*entity.Bill, error)
	Update(ctx context.Context, bill *entity.Bill) (int64, error)
	UpdatePayment(ctx context.Context, billID, adminID int64, received, balance decimal.Decimal) (int64, error)
	Delete(ctx context.Context, billID, adminID int64) (int64, error)
	RenameCustomer(ctx context.Context, adminID int64, oldContact, newContact, customerName string) (int64, error)

	// MaxInvoiceID returns the highest invoice number ever stored for the admin, or 0
	MaxInvoiceID(ctx context.Context, adminID int64) (int64, error)

	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	ListPending(ctx context.Context, adminID int64) ([]entity.Bill, error)
	ListCustomers(ctx context.Context, adminID int64) ([]entity.CustomerRef, error)
}

// BillFilterParams contains filtering parameters for bill queries.
// A nil Pagination returns every match.
type BillFilterParams struct {
	AdminID    int64
	Contact    string
	Window     *storagetime.Window
	Pagination *pagination.PaginationParams
	Ascending  bool // date order; newest first by default
}

package repository

import (
	"context"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

// LedgerRepository defines the aggregation queries behind the dashboard and
// profit views. Sums over empty sets are zero, never an error.
type LedgerRepository interface {
	// SumBillTotals sums total_bill over bills whose storage date is in w.
	// A nil window sums every bill of the admin.
	SumBillTotals(ctx context.Context, adminID int64, w *storagetime.Window) (decimal.Decimal, error)

	// SumExpenses sums expense amounts whose UTC created_at is in w
	SumExpenses(ctx context.Context, adminID int64, w storagetime.Window) (decimal.Decimal, error)

	// ListServiceTaken returns the decoded service_taken of every bill
	ListServiceTaken(ctx context.Context, adminID int64) ([]entity.LineItems, error)
}

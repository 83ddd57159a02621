package repository

import (
	"context"

	"github.com/samber/lo"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type sumRow struct {
	Total decimal.Decimal
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

// billTotalsQuery sums total_bill over the admin's bills dated inside w
func billTotalsQuery(db *gorm.DB, adminID int64, w *storagetime.Window) *gorm.DB {
	return db.Model(&entity.Bill{}).
		Scopes(AdminScope(adminID), WindowScope("date", w)).
		Select("COALESCE(SUM(total_bill), 0) AS total")
}

// expensesQuery sums amount over the admin's expenses created inside w
func expensesQuery(db *gorm.DB, adminID int64, w storagetime.Window) *gorm.DB {
	return db.Model(&entity.Expense{}).
		Scopes(AdminScope(adminID), WindowScope("created_at", &w)).
		Select("COALESCE(SUM(amount), 0) AS total")
}

func (r *ledgerRepository) SumBillTotals(ctx context.Context, adminID int64, w *storagetime.Window) (decimal.Decimal, error) {
	var row sumRow
	if err := billTotalsQuery(conn(ctx, r.db), adminID, w).Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *ledgerRepository) SumExpenses(ctx context.Context, adminID int64, w storagetime.Window) (decimal.Decimal, error) {
	var row sumRow
	if err := expensesQuery(conn(ctx, r.db), adminID, w).Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *ledgerRepository) ListServiceTaken(ctx context.Context, adminID int64) ([]entity.LineItems, error) {
	var raw []datatypes.JSON
	err := conn(ctx, r.db).Model(&entity.Bill{}).
		Scopes(AdminScope(adminID)).
		Order("date DESC, bill_id DESC").
		Pluck("service_taken", &raw).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(raw, func(b datatypes.JSON, _ int) entity.LineItems {
		return entity.DecodeLineItems(b)
	}), nil
}

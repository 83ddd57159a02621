package testutil

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

// InMemoryLedgerStore implements repository.LedgerRepository over the
// in-memory bill and expense stores
type InMemoryLedgerStore struct {
	bills    *InMemoryBillStore
	expenses *InMemoryExpenseStore
}

// NewInMemoryLedgerStore creates a ledger reading from the given stores
func NewInMemoryLedgerStore(bills *InMemoryBillStore, expenses *InMemoryExpenseStore) *InMemoryLedgerStore {
	return &InMemoryLedgerStore{bills: bills, expenses: expenses}
}

func (s *InMemoryLedgerStore) SumBillTotals(_ context.Context, adminID int64, w *storagetime.Window) (decimal.Decimal, error) {
	bills := s.bills.filter(func(b *entity.Bill) bool {
		return b.AdminID == adminID && (w == nil || w.Contains(b.Date))
	}, true)
	return lo.Reduce(bills, func(acc decimal.Decimal, b entity.Bill, _ int) decimal.Decimal {
		return acc.Add(b.TotalBill)
	}, decimal.Zero), nil
}

func (s *InMemoryLedgerStore) SumExpenses(ctx context.Context, adminID int64, w storagetime.Window) (decimal.Decimal, error) {
	expenses, _ := s.expenses.List(ctx, adminID, &w)
	return lo.Reduce(expenses, func(acc decimal.Decimal, e entity.Expense, _ int) decimal.Decimal {
		return acc.Add(e.Amount)
	}, decimal.Zero), nil
}

func (s *InMemoryLedgerStore) ListServiceTaken(_ context.Context, adminID int64) ([]entity.LineItems, error) {
	bills := s.bills.filter(func(b *entity.Bill) bool { return b.AdminID == adminID }, true)
	return lo.Map(bills, func(b entity.Bill, _ int) entity.LineItems { return b.Items() }), nil
}

// InMemoryInvoiceSequencer implements repository.InvoiceSequencer with a
// per-admin counter seeded from the bill store
type InMemoryInvoiceSequencer struct {
	mu       sync.Mutex
	bills    repository.BillRepository
	counters map[int64]int64
}

// NewInMemoryInvoiceSequencer creates a new in-memory sequencer
func NewInMemoryInvoiceSequencer(bills repository.BillRepository) *InMemoryInvoiceSequencer {
	return &InMemoryInvoiceSequencer{bills: bills, counters: make(map[int64]int64)}
}

func (s *InMemoryInvoiceSequencer) Next(ctx context.Context, adminID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.counters[adminID]
	if !ok {
		seed, err := s.bills.MaxInvoiceID(ctx, adminID)
		if err != nil {
			return 0, err
		}
		last = seed
	}
	s.counters[adminID] = last + 1
	return last + 1, nil
}

// InMemoryTransactor runs the callback under a single lock. Nothing is
// rolled back on error.
type InMemoryTransactor struct {
	mu sync.Mutex
}

// NewInMemoryTransactor creates a new in-memory transactor
func NewInMemoryTransactor() *InMemoryTransactor {
	return &InMemoryTransactor{}
}

func (t *InMemoryTransactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

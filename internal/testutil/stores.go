package testutil

import (
	"time"

	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

// Stores bundles the in-memory repositories a service test needs
type Stores struct {
	Bills     *InMemoryBillStore
	Expenses  *InMemoryExpenseStore
	Services  *InMemoryServiceStore
	Tax       *InMemoryTaxSettingsStore
	Ledger    *InMemoryLedgerStore
	Sequencer *InMemoryInvoiceSequencer
	Tx        *InMemoryTransactor
	Keys      *InMemoryIdempotencyStore
}

// NewStores creates a fresh, empty set of stores
func NewStores() *Stores {
	bills := NewInMemoryBillStore()
	expenses := NewInMemoryExpenseStore()
	return &Stores{
		Bills:     bills,
		Expenses:  expenses,
		Services:  NewInMemoryServiceStore(),
		Tax:       NewInMemoryTaxSettingsStore(),
		Ledger:    NewInMemoryLedgerStore(bills, expenses),
		Sequencer: NewInMemoryInvoiceSequencer(bills),
		Tx:        NewInMemoryTransactor(),
		Keys:      NewInMemoryIdempotencyStore(),
	}
}

// BusinessClock is the +05:30 normalizer most tests run with
func BusinessClock() *storagetime.Normalizer {
	return storagetime.New(5*time.Hour + 30*time.Minute)
}

// Dec parses a decimal literal and panics on bad input
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr is Dec returning a pointer
func DecPtr(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

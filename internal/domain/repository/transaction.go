package repository

import (
	"context"
	"errors"
)

// ErrDuplicate is returned when a write violates a uniqueness constraint
var ErrDuplicate = errors.New("duplicate record")

// Transactor runs fn inside a single database transaction. The transaction
// travels in the context handed to fn; repositories pick it up from there.
// Nested calls join the outer transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// InvoiceSequencer hands out per-admin invoice numbers. Next must be called
// inside a Transactor so the number and the bill insert commit together.
type InvoiceSequencer interface {
	Next(ctx context.Context, adminID int64) (int64, error)
}

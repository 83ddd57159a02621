package repository

import (
	"context"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/pkg/storagetime"
)

// ExpenseRepository defines the interface for expense data operations.
// Create and Rename return ErrDuplicate when the name is already taken.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id, adminID int64) (*entity.Expense, error)
	GetByNameKey(ctx context.Context, adminID int64, nameKey string) (*entity.Expense, error)
	// List returns expenses newest first, optionally limited to a UTC window
	List(ctx context.Context, adminID int64, w *storagetime.Window) ([]entity.Expense, error)
	Rename(ctx context.Context, id, adminID int64, name string) (int64, error)
	Delete(ctx context.Context, id, adminID int64) (int64, error)
}

package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return translate(conn(ctx, r.db).Create(expense).Error)
}

func (r *expenseRepository) GetByID(ctx context.Context, id, adminID int64) (*entity.Expense, error) {
	var expense entity.Expense
	err := conn(ctx, r.db).
		Scopes(AdminScope(adminID)).
		First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) GetByNameKey(ctx context.Context, adminID int64, nameKey string) (*entity.Expense, error) {
	var expense entity.Expense
	err := conn(ctx, r.db).
		Scopes(AdminScope(adminID)).
		First(&expense, "name_key = ?", nameKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) List(ctx context.Context, adminID int64, w *storagetime.Window) ([]entity.Expense, error) {
	var expenses []entity.Expense
	err := conn(ctx, r.db).
		Scopes(AdminScope(adminID), WindowScope("created_at", w)).
		Order("created_at DESC, id DESC").
		Find(&expenses).Error
	return expenses, err
}

// Rename sets both the display name and its lower-cased key; map updates
// bypass the BeforeSave hook.
func (r *expenseRepository) Rename(ctx context.Context, id, adminID int64, name string) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Expense{}).
		Where("id = ? AND admin_id = ?", id, adminID).
		Updates(map[string]interface{}{
			"expense_name": name,
			"name_key":     entity.ExpenseNameKey(name),
		})
	return result.RowsAffected, translate(result.Error)
}

func (r *expenseRepository) Delete(ctx context.Context, id, adminID int64) (int64, error) {
	result := conn(ctx, r.db).
		Where("id = ? AND admin_id = ?", id, adminID).
		Delete(&entity.Expense{})
	return result.RowsAffected, result.Error
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

const duplicateExpenseMessage = "An expense with this name already exists"

// ExpenseService handles expense-related operations
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	logger      *logger.Logger
	now         func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, log *logger.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      log,
		now:         time.Now,
	}
}

// AddExpenseInput represents the add expense input
type AddExpenseInput struct {
	AdminID       int64
	PayeeName     string
	ExpenseName   string
	Amount        *decimal.Decimal
	PaymentMethod string
	Status        string
	Description   string
	Date          string
}

// AddExpense records an expense. Names are unique per admin ignoring case.
func (s *ExpenseService) AddExpense(ctx context.Context, input *AddExpenseInput) (*entity.Expense, error) {
	var errs fieldErrors
	errs.requiredID("admin_id", input.AdminID)
	errs.required("payee_name", input.PayeeName)
	errs.required("expense_name", input.ExpenseName)
	switch {
	case input.Amount == nil:
		errs.add("amount", "amount is required")
	case !input.Amount.IsPositive():
		errs.add("amount", "amount must be greater than zero")
	}

	createdAt := s.now().UTC().Truncate(time.Second)
	if strings.TrimSpace(input.Date) != "" {
		t, err := storagetime.ParseInput(input.Date)
		if err != nil {
			errs.add("date", "Invalid date")
		} else {
			createdAt = t.UTC().Truncate(time.Second)
		}
	}

	if err := errs.err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.ExpenseName)
	existing, err := s.expenseRepo.GetByNameKey(ctx, input.AdminID, entity.ExpenseNameKey(name))
	if err != nil {
		return nil, storeFailure(s.logger, "expense.add", input.AdminID, err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError(duplicateExpenseMessage)
	}

	expense := &entity.Expense{
		AdminID:       input.AdminID,
		PayeeName:     strings.TrimSpace(input.PayeeName),
		ExpenseName:   name,
		Amount:        *input.Amount,
		PaymentMethod: defaultString(input.PaymentMethod, entity.DefaultExpensePaymentMethod),
		Status:        defaultString(input.Status, entity.DefaultExpenseStatus),
		Description:   input.Description,
		CreatedAt:     createdAt,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		// lost a race with a concurrent insert of the same name
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError(duplicateExpenseMessage)
		}
		return nil, storeFailure(s.logger, "expense.add", input.AdminID, err)
	}

	return expense, nil
}

// ListExpenses lists an admin's expenses newest first. Both dates must be
// given for the range to apply; it covers whole UTC days.
func (s *ExpenseService) ListExpenses(ctx context.Context, adminID int64, startDate, endDate string) ([]entity.Expense, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}

	var window *storagetime.Window
	if startDate != "" && endDate != "" {
		var errs fieldErrors
		start, err := storagetime.ParseDay(startDate)
		if err != nil {
			errs.add("startDate", "startDate must be a YYYY-MM-DD date")
		}
		end, err := storagetime.ParseDay(endDate)
		if err != nil {
			errs.add("endDate", "endDate must be a YYYY-MM-DD date")
		}
		if err := errs.err(); err != nil {
			return nil, err
		}
		w := storagetime.DayRange(start, end)
		window = &w
	}

	expenses, err := s.expenseRepo.List(ctx, adminID, window)
	if err != nil {
		return nil, storeFailure(s.logger, "expense.list", adminID, err)
	}
	if expenses == nil {
		expenses = []entity.Expense{}
	}
	return expenses, nil
}

// Categories returns the fixed expense categories
func (s *ExpenseService) Categories() []string {
	return append([]string(nil), entity.ExpenseCategories...)
}

// RenameExpense changes an expense's name
func (s *ExpenseService) RenameExpense(ctx context.Context, id, adminID int64, name string) (*entity.Expense, error) {
	var errs fieldErrors
	errs.requiredID("id", id)
	errs.requiredID("admin_id", adminID)
	errs.required("expense_name", name)
	if err := errs.err(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	expense, err := s.expenseRepo.GetByID(ctx, id, adminID)
	if err != nil {
		return nil, storeFailure(s.logger, "expense.rename", adminID, err)
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	other, err := s.expenseRepo.GetByNameKey(ctx, adminID, entity.ExpenseNameKey(name))
	if err != nil {
		return nil, storeFailure(s.logger, "expense.rename", adminID, err)
	}
	if other != nil && other.ID != id {
		return nil, apperror.NewConflictError(duplicateExpenseMessage)
	}

	affected, err := s.expenseRepo.Rename(ctx, id, adminID, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError(duplicateExpenseMessage)
		}
		return nil, storeFailure(s.logger, "expense.rename", adminID, err)
	}
	if affected == 0 {
		return nil, apperror.NewNotFoundError("Expense")
	}

	expense.ExpenseName = name
	expense.NameKey = entity.ExpenseNameKey(name)
	return expense, nil
}

// DeleteExpense removes an expense owned by the admin
func (s *ExpenseService) DeleteExpense(ctx context.Context, id, adminID int64) error {
	var errs fieldErrors
	errs.requiredID("id", id)
	errs.requiredID("admin_id", adminID)
	if err := errs.err(); err != nil {
		return err
	}

	affected, err := s.expenseRepo.Delete(ctx, id, adminID)
	if err != nil {
		return storeFailure(s.logger, "expense.delete", adminID, err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("Expense")
	}
	return nil
}

func defaultString(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}

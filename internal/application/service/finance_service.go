package service

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

// FinanceService combines bills and expenses into profit reports
type FinanceService struct {
	ledgerRepo  repository.LedgerRepository
	billRepo    repository.BillRepository
	expenseRepo repository.ExpenseRepository
	clock       *storagetime.Normalizer
	logger      *logger.Logger
}

// NewFinanceService creates a new finance service
func NewFinanceService(
	ledgerRepo repository.LedgerRepository,
	billRepo repository.BillRepository,
	expenseRepo repository.ExpenseRepository,
	clock *storagetime.Normalizer,
	log *logger.Logger,
) *FinanceService {
	return &FinanceService{
		ledgerRepo:  ledgerRepo,
		billRepo:    billRepo,
		expenseRepo: expenseRepo,
		clock:       clock,
		logger:      log,
	}
}

// ProfitResult is income minus expenses over a day range
type ProfitResult struct {
	Profit   decimal.Decimal `json:"profit"`
	Expenses decimal.Decimal `json:"expenses"`
	Income   decimal.Decimal `json:"income"`
}

// FinanceDetail is one row of the finance summary table. ID is the string
// "total" on the leading row and a numeric id everywhere else.
type FinanceDetail struct {
	ID        any             `json:"id"`
	Name      string          `json:"name"`
	Expense   decimal.Decimal `json:"expense"`
	Income    decimal.Decimal `json:"income"`
	Date      *string         `json:"date"`
	IsExpense bool            `json:"isExpense,omitempty"`
	IsIncome  bool            `json:"isIncome,omitempty"`
	IsTotal   bool            `json:"isTotal,omitempty"`

	day time.Time
}

// FinanceSummary is the profit result plus its itemized rows
type FinanceSummary struct {
	NetBalance decimal.Decimal `json:"netBalance"`
	Expenses   decimal.Decimal `json:"expenses"`
	Income     decimal.Decimal `json:"income"`
	Details    []FinanceDetail `json:"details"`
}

// periods holds one caller range in both storage conventions
type periods struct {
	utc     storagetime.Window
	storage storagetime.Window
}

func (s *FinanceService) parseRange(startDate, endDate string) (*periods, error) {
	var errs fieldErrors
	errs.required("startDate", startDate)
	errs.required("endDate", endDate)
	if err := errs.err(); err != nil {
		return nil, err
	}

	start, err := storagetime.ParseDay(startDate)
	if err != nil {
		errs.add("startDate", "startDate must be a YYYY-MM-DD date")
	}
	end, err := storagetime.ParseDay(endDate)
	if err != nil {
		errs.add("endDate", "endDate must be a YYYY-MM-DD date")
	}
	if len(errs) == 0 && end.Before(start) {
		errs.add("endDate", "endDate cannot be before startDate")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	utc := storagetime.DayRange(start, end)
	return &periods{utc: utc, storage: s.clock.StorageRange(utc)}, nil
}

// Profit sums expenses by UTC created_at and income by bill storage date
// over the same wall-clock days
func (s *FinanceService) Profit(ctx context.Context, adminID int64, startDate, endDate string) (*ProfitResult, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	p, err := s.parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	expenses, err := s.ledgerRepo.SumExpenses(ctx, adminID, p.utc)
	if err != nil {
		return nil, storeFailure(s.logger, "profit.expenses", adminID, err)
	}
	income, err := s.ledgerRepo.SumBillTotals(ctx, adminID, &p.storage)
	if err != nil {
		return nil, storeFailure(s.logger, "profit.income", adminID, err)
	}

	return &ProfitResult{
		Profit:   income.Sub(expenses),
		Expenses: expenses,
		Income:   income,
	}, nil
}

// Summary returns the profit figures with one row per expense and one row
// per customer per day, newest first after a leading TOTAL row
func (s *FinanceService) Summary(ctx context.Context, adminID int64, startDate, endDate string) (*FinanceSummary, error) {
	result, err := s.Profit(ctx, adminID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	p, err := s.parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.List(ctx, adminID, &p.utc)
	if err != nil {
		return nil, storeFailure(s.logger, "finance_summary.expenses", adminID, err)
	}
	bills, _, err := s.billRepo.List(ctx, &repository.BillFilterParams{
		AdminID: adminID,
		Window:  &p.storage,
	})
	if err != nil {
		return nil, storeFailure(s.logger, "finance_summary.bills", adminID, err)
	}

	details := lo.Map(expenses, func(e entity.Expense, _ int) FinanceDetail {
		return newDetail(e.ID, e.ExpenseName, storagetime.DayOf(e.CreatedAt), e.Amount, decimal.Zero, true)
	})
	details = append(details, groupIncome(bills)...)

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].day.After(details[j].day)
	})

	total := FinanceDetail{
		ID:      "total",
		Name:    "TOTAL",
		Expense: result.Expenses,
		Income:  result.Income,
		IsTotal: true,
	}

	return &FinanceSummary{
		NetBalance: result.Profit,
		Expenses:   result.Expenses,
		Income:     result.Income,
		Details:    append([]FinanceDetail{total}, details...),
	}, nil
}

// groupIncome folds bills into one row per (customer_name, storage day),
// keeping the order in which groups are first seen
func groupIncome(bills []entity.Bill) []FinanceDetail {
	type groupKey struct {
		name string
		day  time.Time
	}

	index := make(map[groupKey]int)
	var rows []FinanceDetail
	for _, b := range bills {
		key := groupKey{name: b.CustomerName, day: storagetime.DayOf(b.Date)}
		if i, ok := index[key]; ok {
			rows[i].Income = rows[i].Income.Add(b.TotalBill)
			continue
		}
		index[key] = len(rows)
		rows = append(rows, newDetail(b.BillID, b.CustomerName, key.day, decimal.Zero, b.TotalBill, false))
	}
	return rows
}

func newDetail(id int64, name string, day time.Time, expense, income decimal.Decimal, isExpense bool) FinanceDetail {
	date := day.Format(storagetime.DateLayout)
	return FinanceDetail{
		ID:        id,
		Name:      name,
		Expense:   expense,
		Income:    income,
		Date:      &date,
		IsExpense: isExpense,
		IsIncome:  !isExpense,
		day:       day,
	}
}

func requireAdmin(adminID int64) error {
	var errs fieldErrors
	errs.requiredID("adminId", adminID)
	return errs.err()
}

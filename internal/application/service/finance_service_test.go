package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/billbook-api/internal/testutil"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/stretchr/testify/suite"
)

type FinanceServiceSuite struct {
	suite.Suite
	ctx      context.Context
	stores   *testutil.Stores
	bills    *BillService
	expenses *ExpenseService
	finance  *FinanceService
}

func TestFinanceService(t *testing.T) {
	suite.Run(t, new(FinanceServiceSuite))
}

func (s *FinanceServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = testutil.NewStores()
	clock := testutil.BusinessClock()
	log := logger.NewNop()

	s.bills = NewBillService(s.stores.Bills, s.stores.Sequencer, s.stores.Tx, clock, log)
	s.expenses = NewExpenseService(s.stores.Expenses, log)
	s.finance = NewFinanceService(s.stores.Ledger, s.stores.Bills, s.stores.Expenses, clock, log)
}

func (s *FinanceServiceSuite) bill(customer, date, price string) int64 {
	res, err := s.bills.CreateBill(s.ctx, &CreateBillInput{
		AdminID:       1,
		CustomerName:  customer,
		Contact:       customer + "-phone",
		ServiceTaken:  items(price),
		OtherCharges:  testutil.DecPtr("0"),
		Discount:      testutil.DecPtr("0"),
		Received:      testutil.DecPtr("0"),
		TotalBill:     testutil.DecPtr(price),
		Date:          date,
		PaymentMethod: "cash",
	})
	s.Require().NoError(err)
	return res.BillID
}

func (s *FinanceServiceSuite) expense(name, date, amount string) int64 {
	e, err := s.expenses.AddExpense(s.ctx, &AddExpenseInput{
		AdminID:     1,
		PayeeName:   "Landlord",
		ExpenseName: name,
		Amount:      testutil.DecPtr(amount),
		Date:        date,
	})
	s.Require().NoError(err)
	return e.ID
}

// seed lays out records around the 2024-01-15..2024-01-16 range
func (s *FinanceServiceSuite) seed() {
	s.expense("Rent", "2024-01-15T00:00:00Z", "500")
	s.expense("Power", "2024-01-16T23:59:59Z", "100")
	s.expense("Late", "2024-01-17T00:00:00Z", "30")
	s.expense("Early", "2024-01-14T23:59:59Z", "40")

	s.bill("Asha", "2024-01-15T00:00:00Z", "200")
	s.bill("Ravi", "2024-01-16T23:59:59Z", "300")
	s.bill("Early", "2024-01-14T23:59:59Z", "1000")
	s.bill("Asha", "2024-01-15T10:00:00Z", "50")
}

func (s *FinanceServiceSuite) TestProfit() {
	s.seed()

	result, err := s.finance.Profit(s.ctx, 1, "2024-01-15", "2024-01-16")
	s.Require().NoError(err)
	s.True(testutil.Dec("600").Equal(result.Expenses), "expenses %s", result.Expenses)
	s.True(testutil.Dec("550").Equal(result.Income), "income %s", result.Income)
	s.True(testutil.Dec("-50").Equal(result.Profit), "profit %s", result.Profit)
}

func (s *FinanceServiceSuite) TestProfit_EmptyRange() {
	result, err := s.finance.Profit(s.ctx, 1, "2020-01-01", "2020-01-31")
	s.Require().NoError(err)
	s.True(result.Profit.IsZero())
	s.True(result.Income.IsZero())
	s.True(result.Expenses.IsZero())
}

func (s *FinanceServiceSuite) TestProfit_Validation() {
	tests := []struct {
		name       string
		adminID    int64
		start, end string
	}{
		{"missing admin", 0, "2024-01-01", "2024-01-02"},
		{"missing start", 1, "", "2024-01-02"},
		{"missing end", 1, "2024-01-01", ""},
		{"bad format", 1, "01/01/2024", "2024-01-02"},
		{"end before start", 1, "2024-01-05", "2024-01-02"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.finance.Profit(s.ctx, tt.adminID, tt.start, tt.end)
			s.True(apperror.HasCode(err, http.StatusBadRequest), "got %v", err)

			_, err = s.finance.Summary(s.ctx, tt.adminID, tt.start, tt.end)
			s.True(apperror.HasCode(err, http.StatusBadRequest), "got %v", err)
		})
	}
}

func (s *FinanceServiceSuite) TestSummary_Details() {
	s.seed()

	summary, err := s.finance.Summary(s.ctx, 1, "2024-01-15", "2024-01-16")
	s.Require().NoError(err)
	s.True(testutil.Dec("-50").Equal(summary.NetBalance))

	s.Require().Len(summary.Details, 5)
	total := summary.Details[0]
	s.Equal("total", total.ID)
	s.Equal("TOTAL", total.Name)
	s.True(total.IsTotal)
	s.Nil(total.Date)
	s.True(testutil.Dec("600").Equal(total.Expense))
	s.True(testutil.Dec("550").Equal(total.Income))

	type row struct {
		name   string
		date   string
		income bool
		amount string
	}
	want := []row{
		{"Ravi", "2024-01-17", true, "300"},
		{"Power", "2024-01-16", false, "100"},
		{"Rent", "2024-01-15", false, "500"},
		{"Asha", "2024-01-15", true, "250"},
	}
	for i, w := range want {
		got := summary.Details[i+1]
		s.Equal(w.name, got.Name, "row %d", i)
		s.Require().NotNil(got.Date)
		s.Equal(w.date, *got.Date, "row %d", i)
		s.Equal(w.income, got.IsIncome, "row %d", i)
		s.Equal(!w.income, got.IsExpense, "row %d", i)
		amount := got.Expense
		if w.income {
			amount = got.Income
			s.True(got.Expense.IsZero())
		} else {
			s.True(got.Income.IsZero())
		}
		s.True(testutil.Dec(w.amount).Equal(amount), "row %d amount %s", i, amount)
		s.IsType(int64(0), got.ID)
	}
}

func (s *FinanceServiceSuite) TestSummary_SortedByDateDescending() {
	s.expense("Older", "2024-03-02T08:00:00Z", "10")
	s.expense("Newer", "2024-03-05T08:00:00Z", "10")
	s.bill("Mid", "2024-03-03T08:00:00Z", "10")
	s.bill("Latest", "2024-03-06T08:00:00Z", "10")

	summary, err := s.finance.Summary(s.ctx, 1, "2024-03-01", "2024-03-31")
	s.Require().NoError(err)

	var dates []string
	for _, d := range summary.Details[1:] {
		dates = append(dates, *d.Date)
	}
	s.Equal([]string{"2024-03-06", "2024-03-05", "2024-03-03", "2024-03-02"}, dates)
}

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/testutil"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BillServiceSuite struct {
	suite.Suite
	ctx     context.Context
	stores  *testutil.Stores
	service *BillService
}

func TestBillService(t *testing.T) {
	suite.Run(t, new(BillServiceSuite))
}

func (s *BillServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = testutil.NewStores()
	s.service = NewBillService(
		s.stores.Bills,
		s.stores.Sequencer,
		s.stores.Tx,
		testutil.BusinessClock(),
		logger.NewNop(),
	)
}

func items(prices ...string) entity.LineItems {
	out := make(entity.LineItems, 0, len(prices))
	for i, p := range prices {
		out = append(out, entity.LineItem{Name: "svc-" + string(rune('a'+i)), Price: testutil.Dec(p)})
	}
	return out
}

func (s *BillServiceSuite) createInput(adminID int64) *CreateBillInput {
	return &CreateBillInput{
		AdminID:       adminID,
		CustomerName:  "Asha",
		Contact:       "9876543210",
		ServiceTaken:  items("100", "50"),
		OtherCharges:  testutil.DecPtr("5"),
		Discount:      testutil.DecPtr("0"),
		Received:      testutil.DecPtr("0"),
		TotalBill:     testutil.DecPtr("155"),
		Date:          "2024-01-15T10:30:00Z",
		PaymentMethod: "cash",
	}
}

func (s *BillServiceSuite) mustCreate(input *CreateBillInput) *CreateBillResult {
	res, err := s.service.CreateBill(s.ctx, input)
	s.Require().NoError(err)
	return res
}

func (s *BillServiceSuite) TestCreateBill_TaxAndBalance() {
	input := s.createInput(1)
	input.Received = testutil.DecPtr("100")
	input.TaxDetails = &TaxDetailsInput{WasTaxApplied: true, TaxRate: testutil.Dec("10")}

	res := s.mustCreate(input)
	s.Equal(int64(1), res.InvoiceID)

	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)
	s.True(testutil.Dec("170.5").Equal(bill.TotalBill), "total %s", bill.TotalBill)
	s.True(testutil.Dec("70.5").Equal(bill.Balance), "balance %s", bill.Balance)
	s.True(bill.Balance.Equal(bill.TotalBill.Sub(bill.Received)))
	s.True(bill.TaxRate.Valid)
}

func (s *BillServiceSuite) TestCreateBill_TaxIgnoredWhenNotApplied() {
	input := s.createInput(1)
	input.TaxDetails = &TaxDetailsInput{WasTaxApplied: false, TaxRate: testutil.Dec("18")}

	res := s.mustCreate(input)
	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)
	s.True(testutil.Dec("155").Equal(bill.TotalBill))
	s.False(bill.TaxRate.Valid)
}

func (s *BillServiceSuite) TestCreateBill_NormalizesDate() {
	res := s.mustCreate(s.createInput(1))
	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)
	s.Equal(time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC), bill.Date)
}

func (s *BillServiceSuite) TestCreateBill_InvoiceSequence() {
	for want := int64(1); want <= 3; want++ {
		s.Equal(want, s.mustCreate(s.createInput(1)).InvoiceID)
	}

	// each admin has an independent sequence
	s.Equal(int64(1), s.mustCreate(s.createInput(2)).InvoiceID)

	// numbers are not reused after a delete
	last := s.mustCreate(s.createInput(1))
	s.Equal(int64(4), last.InvoiceID)
	s.Require().NoError(s.service.DeleteBill(s.ctx, last.BillID, 1))
	s.Equal(int64(5), s.mustCreate(s.createInput(1)).InvoiceID)
}

func (s *BillServiceSuite) TestCreateBill_SeedsFromExistingBills() {
	s.Require().NoError(s.stores.Bills.Create(s.ctx, &entity.Bill{AdminID: 7, InvoiceID: 41}))
	s.Equal(int64(42), s.mustCreate(s.createInput(7)).InvoiceID)
}

func (s *BillServiceSuite) TestCreateBill_DiscountBoundary() {
	input := s.createInput(1)
	input.ServiceTaken = items("100")
	input.OtherCharges = testutil.DecPtr("0")
	input.Discount = testutil.DecPtr("100")
	input.TaxDetails = &TaxDetailsInput{WasTaxApplied: true, TaxRate: testutil.Dec("10")}

	res := s.mustCreate(input)
	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)
	s.True(bill.TotalBill.IsZero())

	input.Discount = testutil.DecPtr("101")
	_, err = s.service.CreateBill(s.ctx, input)
	s.Require().Error(err)
	s.True(apperror.HasCode(err, http.StatusBadRequest))
}

func (s *BillServiceSuite) TestCreateBill_Overpayment() {
	input := s.createInput(1)
	input.ServiceTaken = items("90")
	input.OtherCharges = testutil.DecPtr("0")

	input.Received = testutil.DecPtr("90")
	res := s.mustCreate(input)
	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)
	s.True(bill.Balance.IsZero())

	input.Received = testutil.DecPtr("91")
	_, err = s.service.CreateBill(s.ctx, input)
	s.Require().Error(err)
	appErr := apperror.GetAppError(err)
	s.Equal(http.StatusBadRequest, appErr.Code)
	s.Equal("received", appErr.Errors[0].Field)
}

func (s *BillServiceSuite) TestCreateBill_Validation() {
	tests := []struct {
		name   string
		mutate func(*CreateBillInput)
		field  string
	}{
		{"missing admin", func(in *CreateBillInput) { in.AdminID = 0 }, "admin_id"},
		{"blank customer", func(in *CreateBillInput) { in.CustomerName = "  " }, "customer_name"},
		{"blank contact", func(in *CreateBillInput) { in.Contact = "" }, "contact"},
		{"no services", func(in *CreateBillInput) { in.ServiceTaken = nil }, "service_taken"},
		{"negative price", func(in *CreateBillInput) { in.ServiceTaken = items("-1") }, "service_taken"},
		{"missing discount", func(in *CreateBillInput) { in.Discount = nil }, "discount"},
		{"negative charges", func(in *CreateBillInput) { in.OtherCharges = testutil.DecPtr("-5") }, "other_charges"},
		{"bad method", func(in *CreateBillInput) { in.PaymentMethod = "cheque" }, "payment_method"},
		{"bad date", func(in *CreateBillInput) { in.Date = "yesterday" }, "date"},
		{"missing date", func(in *CreateBillInput) { in.Date = "" }, "date"},
		{"negative tax", func(in *CreateBillInput) {
			in.TaxDetails = &TaxDetailsInput{WasTaxApplied: true, TaxRate: testutil.Dec("-1")}
		}, "tax_details.taxRate"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			input := s.createInput(1)
			tt.mutate(input)
			_, err := s.service.CreateBill(s.ctx, input)
			s.Require().Error(err)
			appErr := apperror.GetAppError(err)
			s.Equal(http.StatusBadRequest, appErr.Code)
			fields := make([]string, 0, len(appErr.Errors))
			for _, fe := range appErr.Errors {
				fields = append(fields, fe.Field)
			}
			s.Contains(fields, tt.field)
		})
	}
	s.Empty(s.stores.Bills.All())
}

func (s *BillServiceSuite) TestCreateBill_PaymentMethodCaseInsensitive() {
	input := s.createInput(1)
	input.PaymentMethod = "E-Transfer"
	res := s.mustCreate(input)
	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)
	s.Equal("e-transfer", bill.PaymentMethod.String())
}

func (s *BillServiceSuite) updateFrom(bill *entity.Bill) *UpdateBillInput {
	var rate *decimal.Decimal
	if bill.TaxRate.Valid {
		r := bill.TaxRate.Decimal
		rate = &r
	}
	total := bill.TotalBill
	other := bill.OtherCharges
	discount := bill.Discount
	return &UpdateBillInput{
		BillID:        bill.BillID,
		AdminID:       bill.AdminID,
		CustomerName:  bill.CustomerName,
		Contact:       bill.Contact,
		ServiceTaken:  bill.Items(),
		OtherCharges:  &other,
		Discount:      &discount,
		TotalBill:     &total,
		TaxRate:       rate,
		PaymentMethod: bill.PaymentMethod.String(),
	}
}

func (s *BillServiceSuite) TestUpdateBill_RoundTripIsIdempotent() {
	input := s.createInput(1)
	input.Received = testutil.DecPtr("20")
	input.TaxDetails = &TaxDetailsInput{WasTaxApplied: true, TaxRate: testutil.Dec("10")}
	res := s.mustCreate(input)

	before, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)

	after, err := s.service.UpdateBill(s.ctx, s.updateFrom(before))
	s.Require().NoError(err)

	s.Equal(before.InvoiceID, after.InvoiceID)
	s.Equal(before.CustomerName, after.CustomerName)
	s.Equal(before.Date, after.Date)
	s.Equal(before.Items(), after.Items())
	s.True(before.TotalBill.Equal(after.TotalBill))
	s.True(before.Received.Equal(after.Received))
	s.True(before.Balance.Equal(after.Balance))
}

func (s *BillServiceSuite) TestUpdateBill_EchoedDateIsNotShiftedAgain() {
	input := s.createInput(1)
	input.Date = "2024-01-15T20:00:00Z"
	res := s.mustCreate(input)

	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)

	raw, err := json.Marshal(bill)
	s.Require().NoError(err)
	var rendered struct {
		Date string `json:"date"`
	}
	s.Require().NoError(json.Unmarshal(raw, &rendered))
	s.Equal("2024-01-16 01:30:00", rendered.Date)

	for i := 0; i < 3; i++ {
		update := s.updateFrom(bill)
		update.Date = &rendered.Date
		bill, err = s.service.UpdateBill(s.ctx, update)
		s.Require().NoError(err)
	}
	s.Equal(time.Date(2024, 1, 16, 1, 30, 0, 0, time.UTC), bill.Date)
}

func (s *BillServiceSuite) TestUpdateBill_ZonedDateIsNormalized() {
	res := s.mustCreate(s.createInput(1))
	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)

	update := s.updateFrom(bill)
	zoned := "2024-02-01T09:00:00Z"
	update.Date = &zoned

	updated, err := s.service.UpdateBill(s.ctx, update)
	s.Require().NoError(err)
	s.Equal(time.Date(2024, 2, 1, 14, 30, 0, 0, time.UTC), updated.Date)
}

func (s *BillServiceSuite) TestUpdateBill_RepricesAndRebalances() {
	input := s.createInput(1)
	input.Received = testutil.DecPtr("50")
	res := s.mustCreate(input)

	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)

	update := s.updateFrom(bill)
	update.ServiceTaken = items("200")
	update.OtherCharges = testutil.DecPtr("0")

	updated, err := s.service.UpdateBill(s.ctx, update)
	s.Require().NoError(err)
	s.True(testutil.Dec("200").Equal(updated.TotalBill))
	s.True(testutil.Dec("50").Equal(updated.Received))
	s.True(testutil.Dec("150").Equal(updated.Balance))
	s.True(updated.Balance.Equal(updated.TotalBill.Sub(updated.Received)))
}

func (s *BillServiceSuite) TestUpdateBill_RejectsTotalBelowReceived() {
	input := s.createInput(1)
	input.Received = testutil.DecPtr("155")
	res := s.mustCreate(input)

	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)

	update := s.updateFrom(bill)
	update.ServiceTaken = items("10")
	update.OtherCharges = testutil.DecPtr("0")

	_, err = s.service.UpdateBill(s.ctx, update)
	appErr := apperror.GetAppError(err)
	s.Equal(http.StatusBadRequest, appErr.Code)
	s.Equal("received", appErr.Errors[0].Field)

	unchanged, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)
	s.True(testutil.Dec("155").Equal(unchanged.TotalBill))
	s.True(unchanged.Balance.IsZero())
}

func (s *BillServiceSuite) TestCreateBill_ConcurrentInvoiceNumbers() {
	const perAdmin = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[int64][]int64{}
	errs := make(chan error, 2*perAdmin)

	for _, adminID := range []int64{1, 2} {
		for i := 0; i < perAdmin; i++ {
			wg.Add(1)
			go func(adminID int64) {
				defer wg.Done()
				res, err := s.service.CreateBill(s.ctx, s.createInput(adminID))
				if err != nil {
					errs <- err
					return
				}
				mu.Lock()
				seen[adminID] = append(seen[adminID], res.InvoiceID)
				mu.Unlock()
			}(adminID)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	for _, adminID := range []int64{1, 2} {
		ids := seen[adminID]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		s.Require().Len(ids, perAdmin)
		for i, id := range ids {
			s.Equal(int64(i+1), id, "admin %d", adminID)
		}
	}
}

func (s *BillServiceSuite) TestUpdateBill_OtherAdminIsNotFound() {
	res := s.mustCreate(s.createInput(1))
	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)

	update := s.updateFrom(bill)
	update.AdminID = 2
	_, err = s.service.UpdateBill(s.ctx, update)
	s.True(apperror.HasCode(err, http.StatusNotFound))
}

func (s *BillServiceSuite) TestApplyPayment_StoresVerbatim() {
	res := s.mustCreate(s.createInput(1))

	err := s.service.ApplyPayment(s.ctx, &ApplyPaymentInput{
		BillID:   res.BillID,
		AdminID:  1,
		Received: testutil.DecPtr("10"),
		Balance:  testutil.DecPtr("999"),
	})
	s.Require().NoError(err)

	bill, err := s.service.GetBill(s.ctx, res.BillID)
	s.Require().NoError(err)
	s.True(testutil.Dec("10").Equal(bill.Received))
	s.True(testutil.Dec("999").Equal(bill.Balance))
}

func (s *BillServiceSuite) TestApplyPayment_Errors() {
	res := s.mustCreate(s.createInput(1))

	err := s.service.ApplyPayment(s.ctx, &ApplyPaymentInput{
		BillID: res.BillID, AdminID: 1, Received: testutil.DecPtr("10"),
	})
	s.True(apperror.HasCode(err, http.StatusBadRequest))

	err = s.service.ApplyPayment(s.ctx, &ApplyPaymentInput{
		BillID: res.BillID, AdminID: 2, Received: testutil.DecPtr("10"), Balance: testutil.DecPtr("0"),
	})
	s.True(apperror.HasCode(err, http.StatusNotFound))
}

func (s *BillServiceSuite) TestDeleteBill() {
	res := s.mustCreate(s.createInput(1))

	s.True(apperror.HasCode(s.service.DeleteBill(s.ctx, res.BillID, 2), http.StatusNotFound))
	s.Require().NoError(s.service.DeleteBill(s.ctx, res.BillID, 1))
	s.True(apperror.HasCode(s.service.DeleteBill(s.ctx, res.BillID, 1), http.StatusNotFound))

	_, err := s.service.GetBill(s.ctx, res.BillID)
	s.True(apperror.HasCode(err, http.StatusNotFound))
}

func (s *BillServiceSuite) TestListBills_NewestFirst() {
	for _, d := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		input := s.createInput(1)
		input.Date = d
		s.mustCreate(input)
	}

	result, err := s.service.ListBills(s.ctx, 1, &pagination.PaginationParams{Page: 1, PerPage: 2})
	s.Require().NoError(err)
	s.Len(result.Items, 2)
	s.Equal(int64(3), result.Pagination.Total)
	s.Equal(time.March, result.Items[0].Date.Month())
	s.Equal(time.February, result.Items[1].Date.Month())
}

func (s *BillServiceSuite) TestPendingBalancesAndCustomers() {
	paid := s.createInput(1)
	paid.Received = testutil.DecPtr("155")
	s.mustCreate(paid)

	owing := s.createInput(1)
	owing.CustomerName = "Ravi"
	owing.Contact = "111"
	owing.Received = testutil.DecPtr("55")
	s.mustCreate(owing)

	pending, err := s.service.PendingBalances(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal("Ravi", pending[0].CustomerName)
	s.True(testutil.Dec("100").Equal(pending[0].Balance))

	customers, err := s.service.PreviousCustomers(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(customers, 2)

	none, err := s.service.PreviousCustomers(s.ctx, 99)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *BillServiceSuite) TestRenameCustomer() {
	s.mustCreate(s.createInput(1))
	s.mustCreate(s.createInput(1))
	s.mustCreate(s.createInput(2))

	n, err := s.service.RenameCustomer(s.ctx, &RenameCustomerInput{
		AdminID:      1,
		OldContact:   "9876543210",
		NewContact:   "5550001",
		CustomerName: "Asha K",
	})
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	customers, err := s.service.PreviousCustomers(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal([]entity.CustomerRef{{CustomerName: "Asha K", Contact: "5550001"}}, customers)

	_, err = s.service.RenameCustomer(s.ctx, &RenameCustomerInput{AdminID: 1})
	s.True(apperror.HasCode(err, http.StatusBadRequest))
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/pagination"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

// BillService handles the bill lifecycle
type BillService struct {
	billRepo  repository.BillRepository
	sequencer repository.InvoiceSequencer
	txManager repository.Transactor
	clock     *storagetime.Normalizer
	logger    *logger.Logger
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	sequencer repository.InvoiceSequencer,
	txManager repository.Transactor,
	clock *storagetime.Normalizer,
	log *logger.Logger,
) *BillService {
	return &BillService{
		billRepo:  billRepo,
		sequencer: sequencer,
		txManager: txManager,
		clock:     clock,
		logger:    log,
	}
}

// TaxDetailsInput says whether tax applies to a new bill and at what rate
type TaxDetailsInput struct {
	WasTaxApplied bool
	TaxRate       decimal.Decimal
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	AdminID       int64
	CustomerName  string
	Contact       string
	ServiceTaken  entity.LineItems
	OtherCharges  *decimal.Decimal
	Discount      *decimal.Decimal
	Received      *decimal.Decimal
	TotalBill     *decimal.Decimal
	Date          string
	TaxDetails    *TaxDetailsInput
	PaymentMethod string
}

// CreateBillResult identifies a newly created bill
type CreateBillResult struct {
	BillID    int64 `json:"bill_id"`
	InvoiceID int64 `json:"invoiceid"`
}

// CreateBill validates, prices and stores a new bill. The invoice number and
// the insert share one transaction.
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*CreateBillResult, error) {
	var errs fieldErrors
	errs.requiredID("admin_id", input.AdminID)
	errs.required("customer_name", input.CustomerName)
	errs.required("contact", input.Contact)
	errs.lineItems("service_taken", input.ServiceTaken)
	errs.nonNegative("other_charges", input.OtherCharges)
	errs.nonNegative("discount", input.Discount)
	errs.nonNegative("received", input.Received)
	errs.nonNegative("total_bill", input.TotalBill)

	method, ok := enum.ParsePaymentMethod(input.PaymentMethod)
	if !ok {
		errs.add("payment_method", "payment_method must be one of: cash, e-transfer")
	}

	date, err := s.clock.Normalize(input.Date)
	if err != nil {
		errs.add("date", "Invalid date")
	}

	taxRate := decimal.NullDecimal{}
	if input.TaxDetails != nil && input.TaxDetails.WasTaxApplied {
		if input.TaxDetails.TaxRate.IsNegative() {
			errs.add("tax_details.taxRate", "taxRate must be a non-negative number")
		}
		taxRate = decimal.NewNullDecimal(input.TaxDetails.TaxRate)
	}

	if err := errs.err(); err != nil {
		return nil, err
	}

	totals, err := ComputeBillTotals(input.ServiceTaken, *input.OtherCharges, *input.Discount, taxRate)
	if err != nil {
		return nil, err
	}

	received := *input.Received
	if received.GreaterThan(totals.TotalWithTax) {
		return nil, apperror.NewFieldError("received", "Received amount cannot exceed the total bill")
	}

	bill := &entity.Bill{
		AdminID:       input.AdminID,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		Contact:       strings.TrimSpace(input.Contact),
		ServiceTaken:  input.ServiceTaken.JSON(),
		OtherCharges:  *input.OtherCharges,
		Discount:      *input.Discount,
		TaxRate:       taxRate,
		PaymentMethod: method,
		Date:          date,
		TotalBill:     totals.TotalWithTax,
		Received:      received,
		Balance:       totals.TotalWithTax.Sub(received),
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		invoiceID, err := s.sequencer.Next(ctx, input.AdminID)
		if err != nil {
			return err
		}
		bill.InvoiceID = invoiceID
		return s.billRepo.Create(ctx, bill)
	})
	if err != nil {
		return nil, storeFailure(s.logger, "bill.create", input.AdminID, err)
	}

	s.logger.Infow("bill created",
		"admin_id", bill.AdminID,
		"bill_id", bill.BillID,
		"invoiceid", bill.InvoiceID,
		"total_bill", bill.TotalBill.String(),
	)

	return &CreateBillResult{BillID: bill.BillID, InvoiceID: bill.InvoiceID}, nil
}

// UpdateBillInput represents the update bill input. Received and balance
// are not part of an update; a nil Date keeps the stored one.
type UpdateBillInput struct {
	BillID        int64
	AdminID       int64
	CustomerName  string
	Contact       string
	ServiceTaken  entity.LineItems
	OtherCharges  *decimal.Decimal
	Discount      *decimal.Decimal
	TotalBill     *decimal.Decimal
	TaxRate       *decimal.Decimal
	PaymentMethod string
	Date          *string
}

// UpdateBill rewrites a bill's details and reprices it. The stored received
// amount is kept and the balance follows the new total.
func (s *BillService) UpdateBill(ctx context.Context, input *UpdateBillInput) (*entity.Bill, error) {
	var errs fieldErrors
	errs.requiredID("bill_id", input.BillID)
	errs.requiredID("admin_id", input.AdminID)
	errs.required("customer_name", input.CustomerName)
	errs.required("contact", input.Contact)
	errs.lineItems("service_taken", input.ServiceTaken)
	errs.nonNegative("other_charges", input.OtherCharges)
	errs.nonNegative("discount", input.Discount)
	errs.nonNegative("total_bill", input.TotalBill)

	method, ok := enum.ParsePaymentMethod(input.PaymentMethod)
	if !ok {
		errs.add("payment_method", "payment_method must be one of: cash, e-transfer")
	}

	taxRate := decimal.NullDecimal{}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() {
			errs.add("tax_rate", "tax_rate must be a non-negative number")
		}
		taxRate = decimal.NewNullDecimal(*input.TaxRate)
	}

	var newDate *time.Time
	if input.Date != nil && strings.TrimSpace(*input.Date) != "" {
		d, err := s.clock.Restore(*input.Date)
		if err != nil {
			errs.add("date", "Invalid date")
		} else {
			newDate = &d
		}
	}

	if err := errs.err(); err != nil {
		return nil, err
	}

	totals, err := ComputeBillTotals(input.ServiceTaken, *input.OtherCharges, *input.Discount, taxRate)
	if err != nil {
		return nil, err
	}

	existing, err := s.billRepo.GetForAdmin(ctx, input.BillID, input.AdminID)
	if err != nil {
		return nil, storeFailure(s.logger, "bill.update", input.AdminID, err)
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	if existing.Received.GreaterThan(totals.TotalWithTax) {
		return nil, apperror.NewFieldError("received", "received amount exceeds the repriced total")
	}

	existing.CustomerName = strings.TrimSpace(input.CustomerName)
	existing.Contact = strings.TrimSpace(input.Contact)
	existing.ServiceTaken = input.ServiceTaken.JSON()
	existing.OtherCharges = *input.OtherCharges
	existing.Discount = *input.Discount
	existing.TaxRate = taxRate
	existing.PaymentMethod = method
	existing.TotalBill = totals.TotalWithTax
	existing.Balance = totals.TotalWithTax.Sub(existing.Received)
	if newDate != nil {
		existing.Date = *newDate
	}

	affected, err := s.billRepo.Update(ctx, existing)
	if err != nil {
		return nil, storeFailure(s.logger, "bill.update", input.AdminID, err)
	}
	if affected == 0 {
		// deleted between the read and the write
		return nil, apperror.NewNotFoundError("Bill")
	}

	updated, err := s.billRepo.GetForAdmin(ctx, input.BillID, input.AdminID)
	if err != nil {
		return nil, storeFailure(s.logger, "bill.update", input.AdminID, err)
	}
	if updated == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return updated, nil
}

// ApplyPaymentInput represents a payment update
type ApplyPaymentInput struct {
	BillID   int64
	AdminID  int64
	Received *decimal.Decimal
	Balance  *decimal.Decimal
}

// ApplyPayment stores received and balance exactly as given. The pair is not
// reconciled against total_bill.
func (s *BillService) ApplyPayment(ctx context.Context, input *ApplyPaymentInput) error {
	var errs fieldErrors
	errs.requiredID("bill_id", input.BillID)
	errs.requiredID("admin_id", input.AdminID)
	errs.nonNegative("received", input.Received)
	errs.nonNegative("balance", input.Balance)
	if err := errs.err(); err != nil {
		return err
	}

	affected, err := s.billRepo.UpdatePayment(ctx, input.BillID, input.AdminID, *input.Received, *input.Balance)
	if err != nil {
		return storeFailure(s.logger, "bill.apply_payment", input.AdminID, err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("Bill")
	}
	return nil
}

// DeleteBill hard-deletes a bill owned by the admin
func (s *BillService) DeleteBill(ctx context.Context, billID, adminID int64) error {
	var errs fieldErrors
	errs.requiredID("bill_id", billID)
	errs.requiredID("admin_id", adminID)
	if err := errs.err(); err != nil {
		return err
	}

	affected, err := s.billRepo.Delete(ctx, billID, adminID)
	if err != nil {
		return storeFailure(s.logger, "bill.delete", adminID, err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("Bill")
	}

	s.logger.Infow("bill deleted", "admin_id", adminID, "bill_id", billID)
	return nil
}

// GetBill retrieves a bill by ID
func (s *BillService) GetBill(ctx context.Context, billID int64) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, storeFailure(s.logger, "bill.get", 0, err)
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists an admin's bills, newest first
func (s *BillService) ListBills(ctx context.Context, adminID int64, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Bill], error) {
	params.Validate()
	bills, total, err := s.billRepo.List(ctx, &repository.BillFilterParams{
		AdminID:    adminID,
		Pagination: params,
	})
	if err != nil {
		return nil, storeFailure(s.logger, "bill.list", adminID, err)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// PendingBalance is the projection used by the pending-balances view
type PendingBalance struct {
	BillID       int64           `json:"bill_id"`
	InvoiceID    int64           `json:"invoiceid"`
	CustomerName string          `json:"customer_name"`
	Contact      string          `json:"contact"`
	Date         string          `json:"date"`
	TotalBill    decimal.Decimal `json:"total_bill"`
	Received     decimal.Decimal `json:"received"`
	Balance      decimal.Decimal `json:"balance"`
}

// PendingBalances lists bills with money still owed, newest first
func (s *BillService) PendingBalances(ctx context.Context, adminID int64) ([]PendingBalance, error) {
	bills, err := s.billRepo.ListPending(ctx, adminID)
	if err != nil {
		return nil, storeFailure(s.logger, "bill.pending", adminID, err)
	}

	pending := make([]PendingBalance, 0, len(bills))
	for _, b := range bills {
		pending = append(pending, PendingBalance{
			BillID:       b.BillID,
			InvoiceID:    b.InvoiceID,
			CustomerName: b.CustomerName,
			Contact:      b.Contact,
			Date:         s.clock.Format(b.Date),
			TotalBill:    b.TotalBill,
			Received:     b.Received,
			Balance:      b.Balance,
		})
	}
	return pending, nil
}

// PreviousCustomers lists the distinct customers an admin has billed
func (s *BillService) PreviousCustomers(ctx context.Context, adminID int64) ([]entity.CustomerRef, error) {
	customers, err := s.billRepo.ListCustomers(ctx, adminID)
	if err != nil {
		return nil, storeFailure(s.logger, "bill.customers", adminID, err)
	}
	if customers == nil {
		customers = []entity.CustomerRef{}
	}
	return customers, nil
}

// RenameCustomerInput represents a bulk customer rename
type RenameCustomerInput struct {
	AdminID      int64
	OldContact   string
	NewContact   string
	CustomerName string
}

// RenameCustomer rewrites name and contact on every bill matching the old
// contact and returns how many bills changed
func (s *BillService) RenameCustomer(ctx context.Context, input *RenameCustomerInput) (int64, error) {
	var errs fieldErrors
	errs.requiredID("admin_id", input.AdminID)
	errs.required("old_contact", input.OldContact)
	errs.required("new_contact", input.NewContact)
	errs.required("customer_name", input.CustomerName)
	if err := errs.err(); err != nil {
		return 0, err
	}

	affected, err := s.billRepo.RenameCustomer(ctx, input.AdminID,
		strings.TrimSpace(input.OldContact),
		strings.TrimSpace(input.NewContact),
		strings.TrimSpace(input.CustomerName),
	)
	if err != nil {
		return 0, storeFailure(s.logger, "bill.rename_customer", input.AdminID, err)
	}
	return affected, nil
}

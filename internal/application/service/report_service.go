package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

// ReportService serves the read-only bill reports
type ReportService struct {
	billRepo repository.BillRepository
	clock    *storagetime.Normalizer
	logger   *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(billRepo repository.BillRepository, clock *storagetime.Normalizer, log *logger.Logger) *ReportService {
	return &ReportService{billRepo: billRepo, clock: clock, logger: log}
}

// Reports lists every bill of the admin, newest first
func (s *ReportService) Reports(ctx context.Context, adminID int64) ([]entity.Bill, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	return s.bills(ctx, "report.list", &repository.BillFilterParams{AdminID: adminID})
}

// CustomerHistory is every bill issued to one contact
type CustomerHistory struct {
	CustomerName string        `json:"customer_name"`
	Contact      string        `json:"contact"`
	History      []entity.Bill `json:"history"`
}

// CustomerHistory lists a customer's bills newest first. The name is taken
// from the most recent bill.
func (s *ReportService) CustomerHistory(ctx context.Context, adminID int64, contact string) (*CustomerHistory, error) {
	var errs fieldErrors
	errs.requiredID("admin_id", adminID)
	errs.required("contact", contact)
	if err := errs.err(); err != nil {
		return nil, err
	}
	contact = strings.TrimSpace(contact)

	bills, err := s.bills(ctx, "report.customer", &repository.BillFilterParams{
		AdminID: adminID,
		Contact: contact,
	})
	if err != nil {
		return nil, err
	}

	history := &CustomerHistory{Contact: contact, History: bills}
	if len(bills) > 0 {
		history.CustomerName = bills[0].CustomerName
	}
	return history, nil
}

// WorkHistoryEntry is the condensed bill row shown in the work log
type WorkHistoryEntry struct {
	ID           int64               `json:"id"`
	CustomerName string              `json:"customer_name"`
	Contact      string              `json:"contact"`
	ServiceTaken entity.LineItems    `json:"service_taken"`
	OtherCharges decimal.Decimal     `json:"other_charges"`
	TotalWithTax decimal.Decimal     `json:"total_with_tax"`
	Date         string              `json:"date"`
	TaxRate      decimal.NullDecimal `json:"tax_rate"`
}

// WorkHistory lists condensed bills newest first
func (s *ReportService) WorkHistory(ctx context.Context, adminID int64) ([]WorkHistoryEntry, error) {
	if err := requireAdmin(adminID); err != nil {
		return nil, err
	}
	bills, err := s.bills(ctx, "report.work_history", &repository.BillFilterParams{AdminID: adminID})
	if err != nil {
		return nil, err
	}

	return lo.Map(bills, func(b entity.Bill, _ int) WorkHistoryEntry {
		return WorkHistoryEntry{
			ID:           b.BillID,
			CustomerName: lo.Ternary(b.CustomerName == "", "N/A", b.CustomerName),
			Contact:      b.Contact,
			ServiceTaken: b.Items(),
			OtherCharges: b.OtherCharges,
			TotalWithTax: b.TotalBill,
			Date:         s.clock.Format(b.Date),
			TaxRate:      b.TaxRate,
		}
	}), nil
}

// ExportRow is one flattened bill, ready for a spreadsheet writer
type ExportRow struct {
	BillID        int64           `json:"bill_id"`
	Date          string          `json:"date"`
	CustomerName  string          `json:"customer_name"`
	Contact       string          `json:"contact"`
	Services      string          `json:"services"`
	OtherCharges  decimal.Decimal `json:"other_charges"`
	Discount      decimal.Decimal `json:"discount"`
	TaxRate       string          `json:"tax_rate"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
}

// ExportRows flattens the bills dated within the given calendar days
func (s *ReportService) ExportRows(ctx context.Context, adminID int64, startDate, endDate string) ([]ExportRow, error) {
	var errs fieldErrors
	errs.requiredID("adminId", adminID)
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

	// bill dates are already on the business clock; the day bounds apply as is
	window := storagetime.DayRange(start, end)
	bills, err := s.bills(ctx, "report.export", &repository.BillFilterParams{
		AdminID: adminID,
		Window:  &window,
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(bills, func(b entity.Bill, _ int) ExportRow {
		rate := "0%"
		if b.TaxRate.Valid {
			rate = b.TaxRate.Decimal.String() + "%"
		}
		return ExportRow{
			BillID:        b.BillID,
			Date:          b.Date.UTC().Format(storagetime.DateLayout),
			CustomerName:  b.CustomerName,
			Contact:       b.Contact,
			Services:      strings.Join(b.Items().Names(), ", "),
			OtherCharges:  b.OtherCharges,
			Discount:      b.Discount,
			TaxRate:       rate,
			TotalAmount:   b.TotalBill,
			PaymentMethod: lo.Ternary(b.PaymentMethod == "", "cash", b.PaymentMethod.String()),
		}
	}), nil
}

func (s *ReportService) bills(ctx context.Context, op string, params *repository.BillFilterParams) ([]entity.Bill, error) {
	bills, _, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, storeFailure(s.logger, op, params.AdminID, err)
	}
	if bills == nil {
		bills = []entity.Bill{}
	}
	return bills, nil
}

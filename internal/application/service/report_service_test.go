package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/testutil"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/stretchr/testify/suite"
)

type ReportServiceSuite struct {
	suite.Suite
	ctx     context.Context
	bills   *BillService
	reports *ReportService
}

func TestReportService(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}

func (s *ReportServiceSuite) SetupTest() {
	s.ctx = context.Background()
	stores := testutil.NewStores()
	clock := testutil.BusinessClock()
	s.bills = NewBillService(stores.Bills, stores.Sequencer, stores.Tx, clock, logger.NewNop())
	s.reports = NewReportService(stores.Bills, clock, logger.NewNop())

	s.create("Asha", "111", "2024-04-01T04:00:00Z", nil, entity.LineItems{
		{Name: "Haircut", Price: testutil.Dec("200")},
		{Name: "Shave", Price: testutil.Dec("100")},
	})
	s.create("Asha B", "111", "2024-04-03T04:00:00Z", &TaxDetailsInput{WasTaxApplied: true, TaxRate: testutil.Dec("5")}, items("100"))
	s.create("Ravi", "222", "2024-04-02T04:00:00Z", nil, items("80"))
}

func (s *ReportServiceSuite) create(name, contact, date string, tax *TaxDetailsInput, services entity.LineItems) {
	_, err := s.bills.CreateBill(s.ctx, &CreateBillInput{
		AdminID:       1,
		CustomerName:  name,
		Contact:       contact,
		ServiceTaken:  services,
		OtherCharges:  testutil.DecPtr("0"),
		Discount:      testutil.DecPtr("0"),
		Received:      testutil.DecPtr("0"),
		TotalBill:     testutil.DecPtr("0"),
		Date:          date,
		TaxDetails:    tax,
		PaymentMethod: "e-transfer",
	})
	s.Require().NoError(err)
}

func (s *ReportServiceSuite) TestReports() {
	bills, err := s.reports.Reports(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(bills, 3)
	s.Equal("Asha B", bills[0].CustomerName)
	s.Equal("Asha", bills[2].CustomerName)

	none, err := s.reports.Reports(s.ctx, 2)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *ReportServiceSuite) TestCustomerHistory() {
	history, err := s.reports.CustomerHistory(s.ctx, 1, "111")
	s.Require().NoError(err)
	s.Equal("Asha B", history.CustomerName)
	s.Equal("111", history.Contact)
	s.Len(history.History, 2)

	unknown, err := s.reports.CustomerHistory(s.ctx, 1, "999")
	s.Require().NoError(err)
	s.Equal("", unknown.CustomerName)
	s.Empty(unknown.History)

	_, err = s.reports.CustomerHistory(s.ctx, 1, "")
	s.True(apperror.HasCode(err, http.StatusBadRequest))
}

func (s *ReportServiceSuite) TestWorkHistory() {
	entries, err := s.reports.WorkHistory(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("2024-04-03 09:30:00", entries[0].Date)
	s.True(testutil.Dec("105").Equal(entries[0].TotalWithTax))
	s.True(entries[0].TaxRate.Valid)
	s.False(entries[1].TaxRate.Valid)
}

func (s *ReportServiceSuite) TestExportRows() {
	rows, err := s.reports.ExportRows(s.ctx, 1, "2024-04-01", "2024-04-02")
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	s.Equal("Ravi", rows[0].CustomerName)
	s.Equal("0%", rows[0].TaxRate)

	asha := rows[1]
	s.Equal("2024-04-01", asha.Date)
	s.Equal("Haircut, Shave", asha.Services)
	s.Equal("e-transfer", asha.PaymentMethod)
	s.True(testutil.Dec("300").Equal(asha.TotalAmount))

	all, err := s.reports.ExportRows(s.ctx, 1, "2024-04-01", "2024-04-30")
	s.Require().NoError(err)
	s.Equal("5%", all[0].TaxRate)

	_, err = s.reports.ExportRows(s.ctx, 1, "", "2024-04-30")
	s.True(apperror.HasCode(err, http.StatusBadRequest))
}

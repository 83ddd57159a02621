package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

// DashboardService provides the earnings rollup shown on the admin home page
type DashboardService struct {
	ledgerRepo  repository.LedgerRepository
	serviceRepo repository.ServiceRepository
	clock       *storagetime.Normalizer
	logger      *logger.Logger
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	ledgerRepo repository.LedgerRepository,
	serviceRepo repository.ServiceRepository,
	clock *storagetime.Normalizer,
	log *logger.Logger,
) *DashboardService {
	return &DashboardService{
		ledgerRepo:  ledgerRepo,
		serviceRepo: serviceRepo,
		clock:       clock,
		logger:      log,
		now:         time.Now,
	}
}

// DashboardSummary represents the dashboard figures. Earnings windows are
// calendar periods on the business wall clock.
type DashboardSummary struct {
	TodayEarnings     decimal.Decimal    `json:"todayEarnings"`
	YesterdayEarnings decimal.Decimal    `json:"yesterdayEarnings"`
	WeekEarnings      decimal.Decimal    `json:"weekEarnings"`
	MonthEarnings     decimal.Decimal    `json:"monthEarnings"`
	YearEarnings      decimal.Decimal    `json:"yearEarnings"`
	TotalEarnings     decimal.Decimal    `json:"totalEarnings"`
	RawServices       []entity.LineItems `json:"rawServices"`
	ActiveServices    []string           `json:"activeServices"`
	LastUpdated       time.Time          `json:"lastUpdated"`
}

type earningsWindow struct {
	window *storagetime.Window // nil means all time
	dest   *decimal.Decimal
}

// GetSummary computes the dashboard for one admin. The sums are separate
// reads and may straddle a concurrent write.
func (s *DashboardService) GetSummary(ctx context.Context, adminID int64) (*DashboardSummary, error) {
	now := s.now()

	summary := &DashboardSummary{LastUpdated: now.UTC()}

	today := s.clock.Day(now)
	yesterday := s.clock.PreviousDay(now)
	week := s.clock.Week(now)
	month := s.clock.Month(now)
	year := s.clock.Year(now)

	windows := []earningsWindow{
		{&today, &summary.TodayEarnings},
		{&yesterday, &summary.YesterdayEarnings},
		{&week, &summary.WeekEarnings},
		{&month, &summary.MonthEarnings},
		{&year, &summary.YearEarnings},
		{nil, &summary.TotalEarnings},
	}

	for _, w := range windows {
		sum, err := s.ledgerRepo.SumBillTotals(ctx, adminID, w.window)
		if err != nil {
			return nil, storeFailure(s.logger, "dashboard.sum", adminID, err)
		}
		*w.dest = sum
	}

	raw, err := s.ledgerRepo.ListServiceTaken(ctx, adminID)
	if err != nil {
		return nil, storeFailure(s.logger, "dashboard.services_taken", adminID, err)
	}
	summary.RawServices = lo.Ternary(raw == nil, []entity.LineItems{}, raw)

	active, err := s.serviceRepo.ListByStatus(ctx, adminID, enum.ServiceStatusActive)
	if err != nil {
		return nil, storeFailure(s.logger, "dashboard.active_services", adminID, err)
	}
	summary.ActiveServices = lo.Map(active, func(svc entity.Service, _ int) string { return svc.Name })

	return summary, nil
}

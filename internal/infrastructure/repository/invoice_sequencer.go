package repository

import (
	"context"
	"errors"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceSequencer struct {
	db    *gorm.DB
	bills domainRepo.BillRepository
}

// NewInvoiceSequencer creates a sequencer backed by the invoice_counters table
func NewInvoiceSequencer(db *gorm.DB, bills domainRepo.BillRepository) domainRepo.InvoiceSequencer {
	return &invoiceSequencer{db: db, bills: bills}
}

// Next locks the admin's counter row for the rest of the surrounding
// transaction and returns the incremented value. The row is seeded from the
// highest invoice already stored the first time an admin is seen.
func (s *invoiceSequencer) Next(ctx context.Context, adminID int64) (int64, error) {
	counter, err := s.lock(ctx, adminID)
	if err != nil {
		return 0, err
	}

	if counter == nil {
		maxID, err := s.bills.MaxInvoiceID(ctx, adminID)
		if err != nil {
			return 0, err
		}
		seed := entity.InvoiceCounter{AdminID: adminID, LastValue: maxID}
		if err := conn(ctx, s.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return 0, err
		}
		if counter, err = s.lock(ctx, adminID); err != nil {
			return 0, err
		}
		if counter == nil {
			return 0, errors.New("invoice counter missing after seed")
		}
	}

	next := counter.LastValue + 1
	err = conn(ctx, s.db).Model(&entity.InvoiceCounter{}).
		Where("admin_id = ?", adminID).
		Update("last_value", next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (s *invoiceSequencer) lock(ctx context.Context, adminID int64) (*entity.InvoiceCounter, error) {
	var counter entity.InvoiceCounter
	err := conn(ctx, s.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "admin_id = ?", adminID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/storagetime"
	"github.com/shopspring/decimal"
)

// InMemoryExpenseStore implements repository.ExpenseRepository
type InMemoryExpenseStore struct {
	mu       sync.RWMutex
	expenses map[int64]*entity.Expense
	nextID   int64
}

// NewInMemoryExpenseStore creates a new in-memory expense store
func NewInMemoryExpenseStore() *InMemoryExpenseStore {
	return &InMemoryExpenseStore{expenses: make(map[int64]*entity.Expense)}
}

func (s *InMemoryExpenseStore) Create(_ context.Context, expense *entity.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := entity.ExpenseNameKey(expense.ExpenseName)
	for _, e := range s.expenses {
		if e.AdminID == expense.AdminID && e.NameKey == key {
			return repository.ErrDuplicate
		}
	}

	s.nextID++
	expense.ID = s.nextID
	expense.NameKey = key
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	c := *expense
	s.expenses[expense.ID] = &c
	return nil
}

func (s *InMemoryExpenseStore) GetByID(_ context.Context, id, adminID int64) (*entity.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[id]
	if !ok || e.AdminID != adminID {
		return nil, nil
	}
	c := *e
	return &c, nil
}

func (s *InMemoryExpenseStore) GetByNameKey(_ context.Context, adminID int64, nameKey string) (*entity.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.expenses {
		if e.AdminID == adminID && e.NameKey == nameKey {
			c := *e
			return &c, nil
		}
	}
	return nil, nil
}

func (s *InMemoryExpenseStore) List(_ context.Context, adminID int64, w *storagetime.Window) ([]entity.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.Expense
	for _, e := range s.expenses {
		if e.AdminID == adminID && (w == nil || w.Contains(e.CreatedAt)) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryExpenseStore) Rename(_ context.Context, id, adminID int64, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok || e.AdminID != adminID {
		return 0, nil
	}
	key := entity.ExpenseNameKey(name)
	for _, other := range s.expenses {
		if other.ID != id && other.AdminID == adminID && other.NameKey == key {
			return 0, repository.ErrDuplicate
		}
	}
	e.ExpenseName = name
	e.NameKey = key
	return 1, nil
}

func (s *InMemoryExpenseStore) Delete(_ context.Context, id, adminID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok || e.AdminID != adminID {
		return 0, nil
	}
	delete(s.expenses, id)
	return 1, nil
}

// InMemoryServiceStore implements repository.ServiceRepository
type InMemoryServiceStore struct {
	mu       sync.RWMutex
	services map[int64]*entity.Service
	nextID   int64
}

// NewInMemoryServiceStore creates a new in-memory service catalog
func NewInMemoryServiceStore() *InMemoryServiceStore {
	return &InMemoryServiceStore{services: make(map[int64]*entity.Service)}
}

func (s *InMemoryServiceStore) Create(_ context.Context, svc *entity.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	svc.ID = s.nextID
	if svc.Status == "" {
		svc.Status = enum.ServiceStatusActive
	}
	c := *svc
	s.services[svc.ID] = &c
	return nil
}

func (s *InMemoryServiceStore) GetByID(_ context.Context, id, adminID int64) (*entity.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[id]
	if !ok || svc.AdminID != adminID {
		return nil, nil
	}
	c := *svc
	return &c, nil
}

func (s *InMemoryServiceStore) GetActiveByName(_ context.Context, adminID int64, name string) (*entity.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.AdminID == adminID && svc.Name == name && svc.IsActive() {
			c := *svc
			return &c, nil
		}
	}
	return nil, nil
}

func (s *InMemoryServiceStore) ListByStatus(_ context.Context, adminID int64, status enum.ServiceStatus) ([]entity.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Service
	for _, svc := range s.services {
		if svc.AdminID == adminID && svc.Status == status {
			out = append(out, *svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryServiceStore) SetStatus(_ context.Context, id, adminID int64, status enum.ServiceStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok || svc.AdminID != adminID {
		return 0, nil
	}
	svc.Status = status
	return 1, nil
}

func (s *InMemoryServiceStore) Update(_ context.Context, id, adminID int64, name string, price decimal.Decimal) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok || svc.AdminID != adminID {
		return 0, nil
	}
	svc.Name = name
	svc.Price = price
	return 1, nil
}

// InMemoryTaxSettingsStore implements repository.TaxSettingsRepository
type InMemoryTaxSettingsStore struct {
	mu       sync.RWMutex
	settings map[int64]entity.TaxSettings
}

// NewInMemoryTaxSettingsStore creates a new in-memory tax settings store
func NewInMemoryTaxSettingsStore() *InMemoryTaxSettingsStore {
	return &InMemoryTaxSettingsStore{settings: make(map[int64]entity.TaxSettings)}
}

func (s *InMemoryTaxSettingsStore) GetByAdminID(_ context.Context, adminID int64) (*entity.TaxSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.settings[adminID]
	if !ok {
		return nil, nil
	}
	return &ts, nil
}

func (s *InMemoryTaxSettingsStore) Save(_ context.Context, settings *entity.TaxSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.AdminID] = *settings
	return nil
}

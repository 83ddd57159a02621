package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// InMemoryBillStore implements repository.BillRepository
type InMemoryBillStore struct {
	mu     sync.RWMutex
	bills  map[int64]*entity.Bill
	nextID int64
}

// NewInMemoryBillStore creates a new in-memory bill store
func NewInMemoryBillStore() *InMemoryBillStore {
	return &InMemoryBillStore{bills: make(map[int64]*entity.Bill)}
}

func copyBill(b *entity.Bill) *entity.Bill {
	if b == nil {
		return nil
	}
	c := *b
	c.ServiceTaken = append([]byte(nil), b.ServiceTaken...)
	return &c
}

func (s *InMemoryBillStore) Create(_ context.Context, bill *entity.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bills {
		if b.AdminID == bill.AdminID && b.InvoiceID == bill.InvoiceID {
			return repository.ErrDuplicate
		}
	}

	s.nextID++
	bill.BillID = s.nextID
	s.bills[bill.BillID] = copyBill(bill)
	return nil
}

func (s *InMemoryBillStore) GetByID(_ context.Context, billID int64) (*entity.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyBill(s.bills[billID]), nil
}

func (s *InMemoryBillStore) GetForAdmin(_ context.Context, billID, adminID int64) (*entity.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bills[billID]
	if !ok || b.AdminID != adminID {
		return nil, nil
	}
	return copyBill(b), nil
}

func (s *InMemoryBillStore) Update(_ context.Context, bill *entity.Bill) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[bill.BillID]
	if !ok || b.AdminID != bill.AdminID {
		return 0, nil
	}
	updated := copyBill(bill)
	updated.InvoiceID = b.InvoiceID
	updated.CreatedAt = b.CreatedAt
	s.bills[bill.BillID] = updated
	return 1, nil
}

func (s *InMemoryBillStore) UpdatePayment(_ context.Context, billID, adminID int64, received, balance decimal.Decimal) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[billID]
	if !ok || b.AdminID != adminID {
		return 0, nil
	}
	b.Received = received
	b.Balance = balance
	return 1, nil
}

func (s *InMemoryBillStore) Delete(_ context.Context, billID, adminID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[billID]
	if !ok || b.AdminID != adminID {
		return 0, nil
	}
	delete(s.bills, billID)
	return 1, nil
}

func (s *InMemoryBillStore) RenameCustomer(_ context.Context, adminID int64, oldContact, newContact, customerName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, b := range s.bills {
		if b.AdminID == adminID && b.Contact == oldContact {
			b.Contact = newContact
			b.CustomerName = customerName
			n++
		}
	}
	return n, nil
}

func (s *InMemoryBillStore) MaxInvoiceID(_ context.Context, adminID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var maxID int64
	for _, b := range s.bills {
		if b.AdminID == adminID && b.InvoiceID > maxID {
			maxID = b.InvoiceID
		}
	}
	return maxID, nil
}

func (s *InMemoryBillStore) List(_ context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	bills := s.filter(func(b *entity.Bill) bool {
		if b.AdminID != params.AdminID {
			return false
		}
		if params.Contact != "" && b.Contact != params.Contact {
			return false
		}
		return params.Window == nil || params.Window.Contains(b.Date)
	}, params.Ascending)

	total := int64(len(bills))
	if params.Pagination != nil {
		params.Pagination.Validate()
		offset := params.Pagination.Offset()
		if offset >= len(bills) {
			return []entity.Bill{}, total, nil
		}
		end := lo.Min([]int{offset + params.Pagination.PerPage, len(bills)})
		bills = bills[offset:end]
	}
	return bills, total, nil
}

func (s *InMemoryBillStore) ListPending(_ context.Context, adminID int64) ([]entity.Bill, error) {
	return s.filter(func(b *entity.Bill) bool {
		return b.AdminID == adminID && b.Balance.IsPositive()
	}, false), nil
}

func (s *InMemoryBillStore) ListCustomers(_ context.Context, adminID int64) ([]entity.CustomerRef, error) {
	bills := s.filter(func(b *entity.Bill) bool { return b.AdminID == adminID }, true)
	refs := lo.Uniq(lo.Map(bills, func(b entity.Bill, _ int) entity.CustomerRef {
		return entity.CustomerRef{CustomerName: b.CustomerName, Contact: b.Contact}
	}))
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].CustomerName < refs[j].CustomerName })
	return refs, nil
}

// filter returns copies ordered by date then bill_id
func (s *InMemoryBillStore) filter(keep func(*entity.Bill) bool, ascending bool) []entity.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.Bill
	for _, b := range s.bills {
		if keep(b) {
			out = append(out, *copyBill(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !ascending {
			i, j = j, i
		}
		return out[i].Date.Before(out[j].Date) ||
			(out[i].Date.Equal(out[j].Date) && out[i].BillID < out[j].BillID)
	})
	return out
}

// All returns every stored bill, for assertions
func (s *InMemoryBillStore) All() []entity.Bill {
	return s.filter(func(*entity.Bill) bool { return true }, true)
}

package testutil

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
)

// InMemoryIdempotencyStore implements repository.IdempotencyRepository
type InMemoryIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{keys: make(map[string]entity.IdempotencyKey)}
}

func idempotencyMapKey(adminID int64, key string) string {
	return strconv.FormatInt(adminID, 10) + "/" + key
}

func (s *InMemoryIdempotencyStore) Find(_ context.Context, adminID int64, key string, now time.Time) (*entity.IdempotencyKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ikey, ok := s.keys[idempotencyMapKey(adminID, key)]
	if !ok || !ikey.Live(now) {
		return nil, nil
	}
	return &ikey, nil
}

func (s *InMemoryIdempotencyStore) Save(_ context.Context, ikey *entity.IdempotencyKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idempotencyMapKey(ikey.AdminID, ikey.Key)
	if existing, ok := s.keys[k]; ok && existing.Live(ikey.CreatedAt) {
		return repository.ErrDuplicate
	}
	s.keys[k] = *ikey
	return nil
}

func (s *InMemoryIdempotencyStore) Purge(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k, ikey := range s.keys {
		if !ikey.Live(before) {
			delete(s.keys, k)
			n++
		}
	}
	return n, nil
}

// Len reports how many keys are stored
func (s *InMemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

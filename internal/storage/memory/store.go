// Package memory keeps ledger slots in process memory. Values are lost on
// restart; it backs tests and the default development driver.
package memory

import (
	"context"
	"sync"

	"crowdfund/internal/domain"
)

type Store struct {
	mu    sync.Mutex
	slots map[string]domain.Amount
}

func New() *Store {
	return &Store{slots: make(map[string]domain.Amount)}
}

func (s *Store) Load(ctx context.Context, key string) (domain.Amount, error) {
	if err := ctx.Err(); err != nil {
		return domain.Amount{}, err
	}
	if s == nil {
		return domain.Amount{}, domain.ErrStoreUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slots[key], nil
}

// Update holds the store lock across read, fn and write.
func (s *Store) Update(ctx context.Context, key string, fn func(domain.Amount) (domain.Amount, error)) (domain.Amount, error) {
	if err := ctx.Err(); err != nil {
		return domain.Amount{}, err
	}
	if s == nil {
		return domain.Amount{}, domain.ErrStoreUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.slots[key])
	if err != nil {
		return domain.Amount{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Amount{}, err
	}
	s.slots[key] = next
	return next, nil
}

var _ domain.TotalStore = (*Store)(nil)

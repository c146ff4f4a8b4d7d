// Package ledger accumulates contributions into a single persisted total.
//
// The store is passed to every operation; the package keeps no state of its
// own between calls. Isolation of concurrent contributions is the store's
// responsibility (see domain.TotalStore).
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
)

// TotalKey names the slot holding the running total.
const TotalKey = "TOTAL"

// Contribute adds a strictly positive amount to the total and returns the
// new total. Non-positive amounts fail with domain.ErrInvalidAmount and an
// overflowing sum fails with domain.ErrArithmeticOverflow; in both cases the
// stored total is left untouched.
func Contribute(ctx context.Context, store domain.TotalStore, amount domain.Amount) (domain.Amount, error) {
	if !amount.IsPositive() {
		return domain.Amount{}, fmt.Errorf("%w: %s must be positive", domain.ErrInvalidAmount, amount)
	}
	total, err := store.Update(ctx, TotalKey, func(current domain.Amount) (domain.Amount, error) {
		return current.Add(amount)
	})
	if err != nil {
		return domain.Amount{}, fmt.Errorf("contribute: %w", err)
	}
	return total, nil
}

// ReadTotal returns the running total, zero when nothing was contributed.
func ReadTotal(ctx context.Context, store domain.TotalStore) (domain.Amount, error) {
	total, err := store.Load(ctx, TotalKey)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("read total: %w", err)
	}
	return total, nil
}

// Service binds a store and a logger for the HTTP layer.
type Service struct {
	store  domain.TotalStore
	logger zerolog.Logger
}

func NewService(store domain.TotalStore, logger zerolog.Logger) *Service {
	return &Service{store: store, logger: logger.With().Str("component", "ledger").Logger()}
}

func (s *Service) Contribute(ctx context.Context, amount domain.Amount) (domain.Amount, error) {
	total, err := Contribute(ctx, s.store, amount)
	if err != nil {
		level := zerolog.ErrorLevel
		if isRejection(err) {
			level = zerolog.WarnLevel
		}
		s.logger.WithLevel(level).Err(err).Str("amount", amount.String()).Msg("contribution rejected")
		return domain.Amount{}, err
	}
	s.logger.Info().Str("amount", amount.String()).Str("total", total.String()).Msg("contribution accepted")
	return total, nil
}

func (s *Service) Total(ctx context.Context) (domain.Amount, error) {
	total, err := ReadTotal(ctx, s.store)
	if err != nil {
		s.logger.Error().Err(err).Msg("read total failed")
		return domain.Amount{}, err
	}
	return total, nil
}

func isRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidAmount) || errors.Is(err, domain.ErrArithmeticOverflow)
}

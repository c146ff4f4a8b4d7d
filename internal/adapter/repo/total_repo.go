package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
	"crowdfund/internal/sqlinline"
)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TotalRepositoryPG implements domain.TotalStore using PostgreSQL.
type TotalRepositoryPG struct {
	db     txBeginner
	runner *infra.SQLRunner
}

// NewTotalRepository creates a new ledger slot repo.
func NewTotalRepository(pool *pgxpool.Pool, logger zerolog.Logger) *TotalRepositoryPG {
	return &TotalRepositoryPG{db: pool, runner: infra.NewSQLRunner(pool, logger)}
}

// Load returns the stored value, or zero when the slot does not exist yet.
func (r *TotalRepositoryPG) Load(ctx context.Context, key string) (domain.Amount, error) {
	var raw string
	if err := r.runner.QueryRow(ctx, sqlinline.QPGSelectSlot, key).Scan(&raw); err != nil {
		return domain.Amount{}, fmt.Errorf("load slot %s: %w", key, err)
	}
	return parseStored(key, raw)
}

// Update seeds the slot, locks its row for the rest of the transaction and
// writes fn's result. Any error rolls the transaction back.
func (r *TotalRepositoryPG) Update(ctx context.Context, key string, fn func(domain.Amount) (domain.Amount, error)) (domain.Amount, error) {
	var next domain.Amount
	var fnErr error
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		q := r.runner.WithTx(tx)
		if _, err := q.Exec(ctx, sqlinline.QPGSeedSlot, key); err != nil {
			return fmt.Errorf("seed slot %s: %w", key, err)
		}
		var raw string
		if err := q.QueryRow(ctx, sqlinline.QPGLockSlot, key).Scan(&raw); err != nil {
			return fmt.Errorf("lock slot %s: %w", key, err)
		}
		current, err := parseStored(key, raw)
		if err != nil {
			return err
		}
		next, fnErr = fn(current)
		if fnErr != nil {
			return fnErr
		}
		if _, err := q.Exec(ctx, sqlinline.QPGUpdateSlot, key, next.String()); err != nil {
			return fmt.Errorf("write slot %s: %w", key, err)
		}
		return nil
	})
	if fnErr != nil {
		return domain.Amount{}, fnErr
	}
	if err != nil {
		return domain.Amount{}, err
	}
	return next, nil
}

func parseStored(key, raw string) (domain.Amount, error) {
	v, err := domain.ParseAmount(raw)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("slot %s holds %q: %w", key, raw, err)
	}
	return v, nil
}

var _ domain.TotalStore = (*TotalRepositoryPG)(nil)

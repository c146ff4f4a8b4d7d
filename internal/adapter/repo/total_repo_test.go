package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
)

func TestTotalRepositoryLoadMissingSlot(t *testing.T) {
	repo, _ := newFakeRepo()

	got, err := repo.Load(context.Background(), "TOTAL")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Sign() != 0 {
		t.Fatalf("Load = %s, want 0", got)
	}
}

func TestTotalRepositoryUpdateCommits(t *testing.T) {
	repo, slots := newFakeRepo()
	ctx := context.Background()

	for _, amount := range []int64{100, 50} {
		_, err := repo.Update(ctx, "TOTAL", func(current domain.Amount) (domain.Amount, error) {
			return current.Add(domain.NewAmount(amount))
		})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
	}

	got, err := repo.Load(ctx, "TOTAL")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.String() != "150" {
		t.Fatalf("Load = %s, want 150", got)
	}
	if slots.commits != 2 || slots.rollbacks != 0 {
		t.Fatalf("commits=%d rollbacks=%d, want 2/0", slots.commits, slots.rollbacks)
	}
}

func TestTotalRepositoryUpdateRollsBackOnFnError(t *testing.T) {
	repo, slots := newFakeRepo()
	slots.values["TOTAL"] = "7"

	_, err := repo.Update(context.Background(), "TOTAL", func(domain.Amount) (domain.Amount, error) {
		return domain.Amount{}, domain.ErrArithmeticOverflow
	})
	if !errors.Is(err, domain.ErrArithmeticOverflow) {
		t.Fatalf("Update error = %v, want ErrArithmeticOverflow", err)
	}
	if slots.values["TOTAL"] != "7" {
		t.Fatalf("slot = %q, want unchanged 7", slots.values["TOTAL"])
	}
	if slots.commits != 0 || slots.rollbacks != 1 {
		t.Fatalf("commits=%d rollbacks=%d, want 0/1", slots.commits, slots.rollbacks)
	}
}

func TestTotalRepositoryUpdateWriteFailure(t *testing.T) {
	repo, slots := newFakeRepo()
	slots.failWrite = errors.New("connection reset")

	_, err := repo.Update(context.Background(), "TOTAL", func(current domain.Amount) (domain.Amount, error) {
		return current.Add(domain.NewAmount(1))
	})
	if !errors.Is(err, slots.failWrite) {
		t.Fatalf("Update error = %v, want %v", err, slots.failWrite)
	}
	if _, ok := slots.values["TOTAL"]; ok {
		t.Fatalf("seeded slot must not survive a rolled back transaction")
	}
}

func TestTotalRepositoryCorruptValue(t *testing.T) {
	repo, slots := newFakeRepo()
	slots.values["TOTAL"] = "12.5"

	if _, err := repo.Load(context.Background(), "TOTAL"); !errors.Is(err, domain.ErrMalformedAmount) {
		t.Fatalf("Load error = %v, want ErrMalformedAmount", err)
	}
}

func newFakeRepo() (*TotalRepositoryPG, *fakeSlots) {
	slots := &fakeSlots{values: map[string]string{}}
	runner := &infra.SQLRunner{DB: slots, Logger: zerolog.Nop()}
	return &TotalRepositoryPG{db: slots, runner: runner}, slots
}

// fakeSlots mimics the ledger_slots table. Statements are recognized by the
// text that remains once the runner strips the marker line.
type fakeSlots struct {
	mu        sync.Mutex
	values    map[string]string
	commits   int
	rollbacks int
	failWrite error
}

func (f *fakeSlots) Begin(context.Context) (pgx.Tx, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pending := make(map[string]string, len(f.values))
	for k, v := range f.values {
		pending[k] = v
	}
	return &fakeTx{slots: f, pending: pending}, nil
}

func (f *fakeSlots) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, fmt.Errorf("exec outside transaction")
}

func (f *fakeSlots) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	if !strings.Contains(query, "coalesce") {
		return simpleRow{err: fmt.Errorf("unexpected query: %s", query)}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[args[0].(string)]
	if !ok {
		v = "0"
	}
	return simpleRow{value: v}
}

type fakeTx struct {
	pgx.Tx
	slots   *fakeSlots
	pending map[string]string
	closed  bool
}

func (tx *fakeTx) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	key := args[0].(string)
	switch {
	case strings.Contains(query, "insert into ledger_slots"):
		if _, ok := tx.pending[key]; !ok {
			tx.pending[key] = "0"
		}
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(query, "update ledger_slots"):
		if tx.slots.failWrite != nil {
			return pgconn.CommandTag{}, tx.slots.failWrite
		}
		tx.pending[key] = args[1].(string)
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("unexpected exec: %s", query)
}

func (tx *fakeTx) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	if !strings.Contains(query, "for update") {
		return simpleRow{err: fmt.Errorf("unexpected query: %s", query)}
	}
	v, ok := tx.pending[args[0].(string)]
	if !ok {
		return simpleRow{err: pgx.ErrNoRows}
	}
	return simpleRow{value: v}
}

func (tx *fakeTx) Commit(context.Context) error {
	if tx.closed {
		return pgx.ErrTxClosed
	}
	tx.closed = true
	tx.slots.mu.Lock()
	defer tx.slots.mu.Unlock()
	tx.slots.values = tx.pending
	tx.slots.commits++
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if tx.closed {
		return pgx.ErrTxClosed
	}
	tx.closed = true
	tx.slots.rollbacks++
	return nil
}

type simpleRow struct {
	value string
	err   error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 1 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	p, ok := dest[0].(*string)
	if !ok {
		return fmt.Errorf("unexpected scan target %T", dest[0])
	}
	*p = r.value
	return nil
}

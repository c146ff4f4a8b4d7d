package memory

import (
	"context"
	"errors"
	"testing"

	"crowdfund/internal/domain"
)

func TestStoreLoadMissingKeyIsZero(t *testing.T) {
	got, err := New().Load(context.Background(), "TOTAL")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Sign() != 0 {
		t.Fatalf("Load = %s, want 0", got)
	}
}

func TestStoreUpdateFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.Update(ctx, "TOTAL", func(domain.Amount) (domain.Amount, error) {
		return domain.NewAmount(9), nil
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	boom := errors.New("boom")
	_, err := s.Update(ctx, "TOTAL", func(current domain.Amount) (domain.Amount, error) {
		if current.String() != "9" {
			t.Fatalf("current = %s, want 9", current)
		}
		return domain.NewAmount(1000), boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want %v", err, boom)
	}

	got, _ := s.Load(ctx, "TOTAL")
	if got.String() != "9" {
		t.Fatalf("Load = %s, want 9", got)
	}
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New()

	called := false
	_, err := s.Update(ctx, "TOTAL", func(domain.Amount) (domain.Amount, error) {
		called = true
		return domain.NewAmount(1), nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Update error = %v, want context.Canceled", err)
	}
	if called {
		t.Fatalf("fn must not run on a canceled context")
	}
	if _, err := s.Load(ctx, "TOTAL"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load error = %v, want context.Canceled", err)
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, _ = s.Update(ctx, "A", func(domain.Amount) (domain.Amount, error) { return domain.NewAmount(1), nil })

	got, _ := s.Load(ctx, "B")
	if got.Sign() != 0 {
		t.Fatalf("Load(B) = %s, want 0", got)
	}
}

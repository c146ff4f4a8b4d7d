package domain

import "context"

// TotalStore is the persistent key-value capability the ledger runs against.
// Implementations must make Update an isolated read-modify-write: concurrent
// updates of the same key are serialized and never lose a write.
type TotalStore interface {
	// Load returns the value stored under key, or the zero Amount when absent.
	Load(ctx context.Context, key string) (Amount, error)
	// Update passes the current value (zero when absent) to fn and persists
	// the value fn returns. When fn returns an error nothing is written and
	// that error is returned unchanged.
	Update(ctx context.Context, key string, fn func(current Amount) (Amount, error)) (Amount, error)
}

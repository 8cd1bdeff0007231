package store

import (
	"context"
	"errors"
)

// Document keys. Every backend persists one JSON array per key, mirroring
// the four ledgers the application keeps in memory.
const (
	KeyProducts = "products"
	KeySales    = "sales"
	KeyClosings = "closings"
	KeyExpenses = "expenses"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStorage           = errors.New("storage failure")
)

// DocumentStore persists whole collections keyed by name. Load leaves dest
// untouched when the key has never been written, so a fresh store yields
// empty ledgers without a sentinel error.
type DocumentStore interface {
	Load(ctx context.Context, key string, dest any) error
	Save(ctx context.Context, key string, records any) error
	Close() error
}

package checkout

import (
	"context"

	"storefront/internal/domain"
)

// Tx is the view of the catalog and order tables available inside a checkout
// transaction. Variants read through it stay locked until the transaction ends.
type Tx interface {
	LockVariant(ctx context.Context, sizeID string) (*domain.Variant, error)
	DecrementStock(ctx context.Context, sizeID string, n int) error
	CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
}

// UnitOfWork runs fn in a single transaction, committing only when fn returns nil.
type UnitOfWork interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

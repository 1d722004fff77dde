package catalog

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListOthers(ctx context.Context, slug string) ([]domain.Product, error)
	GetVariant(ctx context.Context, sizeID string) (*domain.Variant, error)
	// LockVariant reads the variant with a row lock held until the enclosing
	// transaction ends. Outside a transaction it behaves like GetVariant.
	LockVariant(ctx context.Context, sizeID string) (*domain.Variant, error)
	// DecrementStock subtracts n from the size's stock only if at least n remain.
	DecrementStock(ctx context.Context, sizeID string, n int) error
}

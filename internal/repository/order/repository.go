package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

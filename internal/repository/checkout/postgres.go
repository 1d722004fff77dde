package checkout

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository/catalog"
	"storefront/internal/repository/order"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresUnitOfWork struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) UnitOfWork {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresUnitOfWork{pool: pool, logger: logger}
}

func (u *postgresUnitOfWork) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin checkout tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{
		catalog: catalog.NewPostgres(tx, u.logger),
		orders:  order.NewPostgres(tx, u.logger),
	}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit checkout tx: %w", err)
	}
	return nil
}

type pgTx struct {
	catalog catalog.Repository
	orders  order.Repository
}

func (t *pgTx) LockVariant(ctx context.Context, sizeID string) (*domain.Variant, error) {
	return t.catalog.LockVariant(ctx, sizeID)
}

func (t *pgTx) DecrementStock(ctx context.Context, sizeID string, n int) error {
	return t.catalog.DecrementStock(ctx, sizeID, n)
}

func (t *pgTx) CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	return t.orders.Create(ctx, o)
}

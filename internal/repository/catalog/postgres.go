package catalog

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/db"
	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type postgresRepo struct {
	q      db.Querier
	logger *zap.Logger
}

// NewPostgres builds the catalog repository over a pool or an open transaction.
func NewPostgres(q db.Querier, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{q: q, logger: logger.Named("catalog")}
}

const productColumns = `p.id::text, p.slug, p.name, p.description, p.price::text`

func (r *postgresRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return r.listProducts(ctx, `
SELECT `+productColumns+`
FROM products p
ORDER BY p.sort_order, p.created_at
`)
}

func (r *postgresRepo) ListOthers(ctx context.Context, slug string) ([]domain.Product, error) {
	return r.listProducts(ctx, `
SELECT `+productColumns+`
FROM products p
WHERE p.slug <> $1
ORDER BY p.sort_order, p.created_at
`, slug)
}

func (r *postgresRepo) listProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("list products rows", zap.Error(err))
		return nil, err
	}
	rows.Close()

	for i := range result {
		colors, err := r.colors(ctx, result[i].ID, false)
		if err != nil {
			return nil, err
		}
		result[i].Colors = colors
	}
	r.logger.Debug("list products", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `
SELECT `+productColumns+`
FROM products p
WHERE p.slug = $1
`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("product not found", zap.String("slug", slug))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get product", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	if p.Colors, err = r.colors(ctx, p.ID, true); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) colors(ctx context.Context, productID string, withSizes bool) ([]domain.Color, error) {
	rows, err := r.q.Query(ctx, `
SELECT id::text, name, hex, COALESCE(slug, '')
FROM colors
WHERE product_id = $1
ORDER BY sort_order, name
`, productID)
	if err != nil {
		return nil, fmt.Errorf("query colors: %w", err)
	}
	defer rows.Close()

	colors := []domain.Color{}
	for rows.Next() {
		var c domain.Color
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex, &c.Slug); err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if !withSizes {
		return colors, nil
	}
	for i := range colors {
		if colors[i].Sizes, err = r.sizes(ctx, colors[i].ID); err != nil {
			return nil, err
		}
	}
	return colors, nil
}

func (r *postgresRepo) sizes(ctx context.Context, colorID string) ([]domain.Size, error) {
	rows, err := r.q.Query(ctx, `
SELECT id::text, name, amount
FROM sizes
WHERE color_id = $1
ORDER BY sort_order
`, colorID)
	if err != nil {
		return nil, fmt.Errorf("query sizes: %w", err)
	}
	defer rows.Close()

	sizes := []domain.Size{}
	for rows.Next() {
		var s domain.Size
		if err := rows.Scan(&s.ID, &s.Name, &s.Amount); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}

const variantQuery = `
SELECT s.id::text, s.name, s.amount, p.price::text,
       p.id::text, p.name, p.slug,
       c.id::text, c.name, COALESCE(c.slug, ''), c.hex,
       sp.name, sp.address
FROM sizes s
JOIN colors c ON c.id = s.color_id
JOIN products p ON p.id = c.product_id
JOIN suppliers sp ON sp.id = p.supplier_id
WHERE s.id = $1
`

func (r *postgresRepo) GetVariant(ctx context.Context, sizeID string) (*domain.Variant, error) {
	return r.variant(ctx, variantQuery, sizeID)
}

func (r *postgresRepo) LockVariant(ctx context.Context, sizeID string) (*domain.Variant, error) {
	return r.variant(ctx, variantQuery+"FOR UPDATE OF s\n", sizeID)
}

func (r *postgresRepo) variant(ctx context.Context, query, sizeID string) (*domain.Variant, error) {
	// Cart tokens can carry arbitrary ids; a non-uuid can never match a row.
	if _, err := uuid.Parse(sizeID); err != nil {
		return nil, domain.ErrNotFound
	}

	var (
		v     domain.Variant
		price string
	)
	err := r.q.QueryRow(ctx, query, sizeID).Scan(
		&v.SizeID, &v.Name, &v.StockAmount, &price,
		&v.ProductID, &v.ProductName, &v.ProductSlug,
		&v.ColorID, &v.ColorName, &v.ColorSlug, &v.ColorHex,
		&v.SupplierName, &v.SupplierAddress,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("variant not found", zap.String("size_id", sizeID))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get variant", zap.String("size_id", sizeID), zap.Error(err))
		return nil, err
	}
	if v.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	return &v, nil
}

func (r *postgresRepo) DecrementStock(ctx context.Context, sizeID string, n int) error {
	tag, err := r.q.Exec(ctx, `
UPDATE sizes
SET amount = amount - $2
WHERE id = $1 AND amount >= $2
`, sizeID, n)
	if err != nil {
		r.logger.Error("decrement stock", zap.String("size_id", sizeID), zap.Int("amount", n), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("size %s: %w", sizeID, domain.ErrInsufficientStock)
	}
	r.logger.Debug("stock decremented", zap.String("size_id", sizeID), zap.Int("amount", n))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &price); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	p.Price = d
	p.Colors = []domain.Color{}
	return &p, nil
}

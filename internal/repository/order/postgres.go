package order

import (
	"context"
	"encoding/json"
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

func NewPostgres(q db.Querier, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{q: q, logger: logger.Named("order")}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	items := o.LineItems
	if items == nil {
		items = domain.Cart{}
	}
	lineItems, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal line items: %w", err)
	}

	const q = `
INSERT INTO orders (
    email, first_name, last_name, company, apartment, address, postal_code, city, country, phone,
    shipping_method, shipping_price, subtotal, tax, total, status, line_items, card_last_four, card_expiration
)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12::numeric, $13::numeric, $14::numeric, $15::numeric, $16, $17, $18, $19)
RETURNING id::text, created_at
`
	res := o
	res.LineItems = items
	err = r.q.QueryRow(ctx, q,
		o.Email, o.FirstName, o.LastName, o.Company, o.Apartment, o.Address, o.PostalCode, o.City, o.Country, o.Phone,
		o.ShippingMethod, o.ShippingPrice.String(), o.Subtotal.String(), o.Tax.String(), o.Total.String(),
		o.Status, lineItems, o.CardLastFour, o.CardExpiration,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Error("create order",
			zap.Int("lines", len(items)),
			zap.String("shipping_method", o.ShippingMethod),
			zap.String("total", o.Total.String()),
			zap.Error(err),
		)
		return nil, err
	}
	r.logger.Info("order created", zap.String("id", res.ID), zap.Int("lines", len(items)), zap.String("total", res.Total.String()))
	return &res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	const q = `
SELECT id::text, email, first_name, last_name, COALESCE(company, ''), COALESCE(apartment, ''), address, postal_code,
       city, country, phone, shipping_method, shipping_price::text, subtotal::text, tax::text, total::text,
       status, line_items, card_last_four, card_expiration, created_at
FROM orders
WHERE id = $1
`
	var (
		o                              domain.Order
		shipping, subtotal, tax, total string
		lineItems                      []byte
	)
	err := r.q.QueryRow(ctx, q, id).Scan(
		&o.ID, &o.Email, &o.FirstName, &o.LastName, &o.Company, &o.Apartment, &o.Address, &o.PostalCode,
		&o.City, &o.Country, &o.Phone, &o.ShippingMethod, &shipping, &subtotal, &tax, &total,
		&o.Status, &lineItems, &o.CardLastFour, &o.CardExpiration, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get order", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{{shipping, &o.ShippingPrice}, {subtotal, &o.Subtotal}, {tax, &o.Tax}, {total, &o.Total}} {
		if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", f.raw, err)
		}
	}
	if err := json.Unmarshal(lineItems, &o.LineItems); err != nil {
		return nil, fmt.Errorf("unmarshal line items: %w", err)
	}
	return &o, nil
}

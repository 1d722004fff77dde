package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	carts   map[string]domain.Cart
	saveErr error
	saves   int
}

func newStubSessions() *stubSessions {
	return &stubSessions{carts: map[string]domain.Cart{}}
}

func (s *stubSessions) Load(_ context.Context, token string) domain.Cart {
	if c, ok := s.carts[token]; ok {
		return c
	}
	return domain.Cart{}
}

func (s *stubSessions) Save(_ context.Context, _ string, c domain.Cart) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saves++
	token := "token-" + string(rune('0'+s.saves))
	s.carts[token] = c
	return token, nil
}

type stubCatalog struct {
	variant  *domain.Variant
	err      error
	lastSize string
}

func (s *stubCatalog) GetVariant(_ context.Context, sizeID string) (*domain.Variant, error) {
	s.lastSize = sizeID
	return s.variant, s.err
}

func testVariant() *domain.Variant {
	return &domain.Variant{
		SizeID:          "A",
		Name:            "L",
		Price:           decimal.NewFromInt(32),
		StockAmount:     9,
		ProductID:       "p1",
		ProductName:     "T-shirt simple",
		ProductSlug:     "t-shirt-simple",
		ColorID:         "c1",
		ColorName:       "Blanc",
		ColorSlug:       "t-shirt-simple-blanc",
		ColorHex:        "#ffffff",
		SupplierName:    "Supplier 1",
		SupplierAddress: "1 Avenue de la République, 75011 Paris",
	}
}

func TestServiceGetEmpty(t *testing.T) {
	svc := New(newStubSessions(), &stubCatalog{}, nil)
	view := svc.Get(context.Background(), "")
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.True(t, view.Totals.Total.Equal(decimal.NewFromInt(5)))
}

func TestServiceAddSnapshotsVariant(t *testing.T) {
	sessions := newStubSessions()
	catalog := &stubCatalog{variant: testVariant()}
	svc := New(sessions, catalog, nil)

	view, token, err := svc.Add(context.Background(), "", " A ")
	require.NoError(t, err)
	assert.Equal(t, "A", catalog.lastSize)
	assert.Equal(t, "token-1", token)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Amount)
	assert.Equal(t, "Blanc", view.Items[0].ColorName)
	assert.True(t, view.Items[0].UnitPrice.Equal(decimal.NewFromInt(32)))
	assert.True(t, sessions.carts[token].Equal(view.Items))
}

func TestServiceAddValidation(t *testing.T) {
	svc := New(newStubSessions(), &stubCatalog{}, nil)
	_, _, err := svc.Add(context.Background(), "", "  ")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	svc = New(newStubSessions(), nil, nil)
	_, _, err = svc.Add(context.Background(), "", "A")
	require.EqualError(t, err, "catalog unavailable")
}

func TestServiceAddUnknownSize(t *testing.T) {
	svc := New(newStubSessions(), &stubCatalog{err: domain.ErrNotFound}, nil)
	_, token, err := svc.Add(context.Background(), "old", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "old", token)
}

func TestServiceAddOutOfStock(t *testing.T) {
	sessions := newStubSessions()
	v := testVariant()
	v.StockAmount = 0
	svc := New(sessions, &stubCatalog{variant: v}, nil)

	_, token, err := svc.Add(context.Background(), "old", "A")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, "old", token)
	assert.Zero(t, sessions.saves)
}

func TestServiceUpdateAmount(t *testing.T) {
	sessions := newStubSessions()
	sessions.carts["t"] = domain.Cart{testVariant().LineItem(1)}
	svc := New(sessions, &stubCatalog{}, nil)

	view, _, err := svc.UpdateAmount(context.Background(), "t", "A", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Items[0].Amount)
	assert.Equal(t, 3, view.Totals.Count)

	_, _, err = svc.UpdateAmount(context.Background(), "t", "A", "trois")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, _, err = svc.UpdateAmount(context.Background(), "t", "B", 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceRemove(t *testing.T) {
	sessions := newStubSessions()
	sessions.carts["t"] = domain.Cart{testVariant().LineItem(2)}
	svc := New(sessions, &stubCatalog{}, nil)

	view, token, err := svc.Remove(context.Background(), "t", "A")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Empty(t, sessions.carts[token])
}

func TestServiceSaveError(t *testing.T) {
	sessions := newStubSessions()
	sessions.saveErr = errors.New("redis down")
	svc := New(sessions, &stubCatalog{variant: testVariant()}, nil)

	_, token, err := svc.Add(context.Background(), "keep", "A")
	require.EqualError(t, err, "redis down")
	assert.Equal(t, "keep", token)
}

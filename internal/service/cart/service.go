package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"

	"go.uber.org/zap"
)

type sessionStore interface {
	Load(ctx context.Context, token string) domain.Cart
	Save(ctx context.Context, token string, cart domain.Cart) (string, error)
}

type variantLookup interface {
	GetVariant(ctx context.Context, sizeID string) (*domain.Variant, error)
}

// Service applies cart operations to the cart held in a session token.
type Service struct {
	sessions sessionStore
	catalog  variantLookup
	logger   *zap.Logger
}

func New(sessions sessionStore, catalog variantLookup, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sessions: sessions, catalog: catalog, logger: logger}
}

// View is the cart as rendered by the cart page, priced with the default
// delivery method.
type View struct {
	Items  domain.Cart `json:"items"`
	Totals Totals      `json:"totals"`
}

func NewView(c domain.Cart) View {
	if c == nil {
		c = domain.Cart{}
	}
	return View{Items: c, Totals: Summarize(c, domain.DefaultDeliveryMethod().Price)}
}

func (s *Service) Get(ctx context.Context, token string) View {
	return NewView(s.sessions.Load(ctx, token))
}

// Add snapshots the size's current catalog state into a new line with amount 1.
// Sizes with no stock left are refused.
func (s *Service) Add(ctx context.Context, token, sizeID string) (View, string, error) {
	sizeID = strings.TrimSpace(sizeID)
	if sizeID == "" {
		return View{}, token, fmt.Errorf("sizeId required: %w", domain.ErrInvalidArgument)
	}
	if s.catalog == nil {
		return View{}, token, errors.New("catalog unavailable")
	}
	variant, err := s.catalog.GetVariant(ctx, sizeID)
	if err != nil {
		return View{}, token, err
	}
	if variant.StockAmount < 1 {
		return View{}, token, fmt.Errorf("size %s out of stock: %w", sizeID, domain.ErrInvalidArgument)
	}
	current := s.sessions.Load(ctx, token)
	return s.save(ctx, token, AddItem(current, variant.LineItem(1)))
}

// UpdateAmount sets the quantity of a line from an untyped client value.
func (s *Service) UpdateAmount(ctx context.Context, token, sizeID string, rawAmount any) (View, string, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return View{}, token, err
	}
	updated, err := UpdateAmount(s.sessions.Load(ctx, token), sizeID, amount)
	if err != nil {
		return View{}, token, err
	}
	return s.save(ctx, token, updated)
}

func (s *Service) Remove(ctx context.Context, token, sizeID string) (View, string, error) {
	return s.save(ctx, token, RemoveItem(s.sessions.Load(ctx, token), sizeID))
}

func (s *Service) save(ctx context.Context, token string, c domain.Cart) (View, string, error) {
	next, err := s.sessions.Save(ctx, token, c)
	if err != nil {
		s.logger.Error("cart: save session", zap.Error(err))
		return View{}, token, err
	}
	return NewView(c), next, nil
}

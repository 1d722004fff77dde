package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	checkoutrepo "storefront/internal/repository/checkout"
	"storefront/internal/service/cart"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Submission is the checkout form as posted by the client.
type Submission struct {
	Email          string
	SimulateError  bool
	FirstName      string
	LastName       string
	Company        string
	Address        string
	Apartment      string
	PostalCode     string
	City           string
	Country        string
	Phone          string
	DeliveryMethod string
	DeliveryPrice  string
	CardNumber     string
	NameOnCard     string
	ExpirationDate string
	CVC            string
}

type OutcomeKind string

const (
	OutcomeSuccess               OutcomeKind = "success"
	OutcomeFieldValidationFailed OutcomeKind = "field_validation_failed"
	OutcomeSimulatedError        OutcomeKind = "simulated_error"
	OutcomeInvalidDeliveryMethod OutcomeKind = "invalid_delivery_method"
	OutcomeProductMissing        OutcomeKind = "product_missing"
	OutcomePriceMismatch         OutcomeKind = "price_mismatch"
	OutcomeInsufficientStock     OutcomeKind = "insufficient_stock"
)

var outcomeMessages = map[OutcomeKind]string{
	OutcomeSimulatedError:        "Erreur simulée",
	OutcomeInvalidDeliveryMethod: "Le mode de livraison ne correspond pas",
	OutcomeProductMissing:        "Le produit n'existe pas.",
	OutcomePriceMismatch:         "Le prix ne correspond pas",
	OutcomeInsufficientStock:     "Stock insuffisant",
}

// Outcome is the business result of a checkout. Only one of OrderID,
// FieldErrors or Message is set, depending on Kind.
type Outcome struct {
	Kind        OutcomeKind
	OrderID     string
	FieldErrors FieldErrors
	Message     string
}

// Result pairs the outcome with the session token the transport must write back.
type Result struct {
	Outcome Outcome
	Token   string
}

type sessionStore interface {
	Load(ctx context.Context, token string) domain.Cart
	Save(ctx context.Context, token string, cart domain.Cart) (string, error)
}

type unitOfWork interface {
	InTx(ctx context.Context, fn func(tx checkoutrepo.Tx) error) error
}

type orderEvents interface {
	OrderPlaced(ctx context.Context, order domain.Order) error
}

type Deps struct {
	Sessions sessionStore
	Store    unitOfWork
	Events   orderEvents
	Logger   *zap.Logger
	Now      func() time.Time
}

type Service struct {
	sessions sessionStore
	store    unitOfWork
	events   orderEvents
	logger   *zap.Logger
	now      func() time.Time
}

func New(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{sessions: d.Sessions, store: d.Store, events: d.Events, logger: d.Logger, now: d.Now}
}

// rejection aborts the checkout transaction with a business outcome.
type rejection struct {
	kind   OutcomeKind
	sizeID string
}

func (r *rejection) Error() string {
	return fmt.Sprintf("checkout rejected: %s (size %s)", r.kind, r.sizeID)
}

// Run validates the submission, re-checks the session cart against the live
// catalog and, when everything matches, decrements stock and records the order
// in one transaction. Business failures are reported in the Result; the error
// is reserved for failures after the cart was accepted.
func (s *Service) Run(ctx context.Context, sub Submission, token string) (Result, error) {
	if errs := ValidateSubmission(sub, s.now()); len(errs) > 0 {
		return Result{Outcome: Outcome{Kind: OutcomeFieldValidationFailed, FieldErrors: errs}, Token: token}, nil
	}
	if sub.SimulateError {
		return s.abort(ctx, token, OutcomeSimulatedError), nil
	}
	method, ok := matchDeliveryMethod(sub.DeliveryMethod, sub.DeliveryPrice)
	if !ok {
		s.logger.Info("checkout: delivery method mismatch",
			zap.String("title", sub.DeliveryMethod), zap.String("price", sub.DeliveryPrice))
		return s.abort(ctx, token, OutcomeInvalidDeliveryMethod), nil
	}

	lines := s.sessions.Load(ctx, token)
	var placed *domain.Order
	err := s.store.InTx(ctx, func(tx checkoutrepo.Tx) error {
		if err := crossCheck(ctx, tx, lines); err != nil {
			return err
		}
		for _, line := range lines {
			if err := tx.DecrementStock(ctx, line.SizeID, line.Amount); err != nil {
				return fmt.Errorf("decrement stock for size %s: %w", line.SizeID, err)
			}
		}
		order, err := tx.CreateOrder(ctx, buildOrder(sub, method, lines))
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		placed = order
		return nil
	})

	var rej *rejection
	if errors.As(err, &rej) {
		s.logger.Info("checkout: cart rejected", zap.String("outcome", string(rej.kind)), zap.String("size_id", rej.sizeID))
		return s.abort(ctx, token, rej.kind), nil
	}
	if err != nil {
		s.logger.Error("checkout: commit failed", zap.Int("lines", len(lines)), zap.Error(err))
		return Result{Token: token}, fmt.Errorf("checkout: %w", err)
	}

	next := s.clear(ctx, token)
	s.logger.Info("checkout: order placed", zap.String("order_id", placed.ID), zap.String("total", placed.Total.String()))
	if s.events != nil {
		if err := s.events.OrderPlaced(ctx, *placed); err != nil {
			s.logger.Warn("checkout: publish order placed", zap.String("order_id", placed.ID), zap.Error(err))
		}
	}
	return Result{Outcome: Outcome{Kind: OutcomeSuccess, OrderID: placed.ID}, Token: next}, nil
}

// crossCheck validates every line before any write. Demand is summed per size
// so duplicate lines of the same size cannot together exceed its stock.
func crossCheck(ctx context.Context, tx checkoutrepo.Tx, lines domain.Cart) error {
	demand := make(map[string]int, len(lines))
	for _, line := range lines {
		v, err := tx.LockVariant(ctx, line.SizeID)
		if errors.Is(err, domain.ErrNotFound) {
			return &rejection{kind: OutcomeProductMissing, sizeID: line.SizeID}
		}
		if err != nil {
			return fmt.Errorf("lock size %s: %w", line.SizeID, err)
		}
		if !v.Price.Equal(line.UnitPrice) {
			return &rejection{kind: OutcomePriceMismatch, sizeID: line.SizeID}
		}
		demand[line.SizeID] += line.Amount
		if demand[line.SizeID] > v.StockAmount {
			return &rejection{kind: OutcomeInsufficientStock, sizeID: line.SizeID}
		}
	}
	return nil
}

func matchDeliveryMethod(title, price string) (domain.DeliveryMethod, bool) {
	method, ok := domain.DeliveryMethodByTitle(title)
	if !ok {
		return domain.DeliveryMethod{}, false
	}
	submitted, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil || !submitted.Equal(method.Price) {
		return domain.DeliveryMethod{}, false
	}
	return method, true
}

func buildOrder(sub Submission, method domain.DeliveryMethod, lines domain.Cart) domain.Order {
	totals := cart.Summarize(lines, method.Price)
	return domain.Order{
		Email:          sub.Email,
		FirstName:      sub.FirstName,
		LastName:       sub.LastName,
		Company:        sub.Company,
		Apartment:      sub.Apartment,
		Address:        sub.Address,
		PostalCode:     sub.PostalCode,
		City:           sub.City,
		Country:        sub.Country,
		Phone:          sub.Phone,
		ShippingMethod: method.Title,
		ShippingPrice:  method.Price,
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Total:          totals.Total,
		Status:         domain.OrderStatusProcessing,
		LineItems:      lines.Clone(),
		CardLastFour:   lastFour(sub.CardNumber),
		CardExpiration: sub.ExpirationDate,
	}
}

func lastFour(cardNumber string) string {
	r := []rune(cardNumber)
	if len(r) <= 4 {
		return string(r)
	}
	return string(r[len(r)-4:])
}

func (s *Service) abort(ctx context.Context, token string, kind OutcomeKind) Result {
	return Result{
		Outcome: Outcome{Kind: kind, Message: outcomeMessages[kind]},
		Token:   s.clear(ctx, token),
	}
}

// clear empties the session cart. A failed save keeps the old token so the
// transport does not drop the session.
func (s *Service) clear(ctx context.Context, token string) string {
	next, err := s.sessions.Save(ctx, token, domain.Cart{})
	if err != nil {
		s.logger.Error("checkout: clear cart", zap.Error(err))
		return token
	}
	return next
}

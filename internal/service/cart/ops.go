package cart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat VAT approximation applied to the shipped total.
var TaxRate = decimal.RequireFromString("0.2")

// AddItem returns a copy of cart with item appended. Existing entries for the
// same size are not merged.
func AddItem(cart domain.Cart, item domain.CartLineItem) domain.Cart {
	out := make(domain.Cart, len(cart), len(cart)+1)
	copy(out, cart)
	return append(out, item)
}

// UpdateAmount returns a copy of cart where the first entry for sizeID has its
// amount replaced.
func UpdateAmount(cart domain.Cart, sizeID string, amount int) (domain.Cart, error) {
	if amount < 1 {
		return nil, fmt.Errorf("amount %d must be a positive integer: %w", amount, domain.ErrInvalidArgument)
	}
	idx := indexOf(cart, sizeID)
	if idx < 0 {
		return nil, fmt.Errorf("size %q not in cart: %w", sizeID, domain.ErrNotFound)
	}
	out := cart.Clone()
	out[idx].Amount = amount
	return out, nil
}

// RemoveItem returns a copy of cart without the first entry for sizeID. A
// missing size leaves the cart unchanged.
func RemoveItem(cart domain.Cart, sizeID string) domain.Cart {
	idx := indexOf(cart, sizeID)
	if idx < 0 {
		return cart.Clone()
	}
	out := make(domain.Cart, 0, len(cart)-1)
	out = append(out, cart[:idx]...)
	return append(out, cart[idx+1:]...)
}

// ParseAmount converts an untyped quantity (form value, decoded JSON) into an
// int. Anything that is not an integer yields ErrInvalidArgument.
func ParseAmount(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("amount %v is not an integer: %w", v, domain.ErrInvalidArgument)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("amount %q is not an integer: %w", v, domain.ErrInvalidArgument)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("amount of type %T is not an integer: %w", raw, domain.ErrInvalidArgument)
	}
}

// Totals is the money breakdown shown on the cart page and stored on orders.
type Totals struct {
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Tax      decimal.Decimal `json:"tax"`
}

// Summarize derives the totals of cart for the given shipping price.
// Tax is included in the total, not added to it, and rounded to cents so the
// cart page shows what the order stores.
func Summarize(cart domain.Cart, shipping decimal.Decimal) Totals {
	t := Totals{Subtotal: decimal.Zero, Shipping: shipping}
	for _, item := range cart {
		t.Count += item.Amount
		t.Subtotal = t.Subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Amount))))
	}
	t.Total = t.Subtotal.Add(shipping)
	t.Tax = t.Total.Mul(TaxRate).Round(2)
	return t
}

func indexOf(cart domain.Cart, sizeID string) int {
	for i, item := range cart {
		if item.SizeID == sizeID {
			return i
		}
	}
	return -1
}

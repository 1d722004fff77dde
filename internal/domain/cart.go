package domain

import "github.com/shopspring/decimal"

// CartLineItem is one selected size of a product color, snapshotted from the
// catalog when it was added to the cart.
type CartLineItem struct {
	SizeID          string          `json:"sizeId"`
	Name            string          `json:"name"`
	ColorID         string          `json:"colorId"`
	ColorName       string          `json:"colorName"`
	ColorSlug       string          `json:"colorSlug,omitempty"`
	ColorHex        string          `json:"colorHex,omitempty"`
	ProductID       string          `json:"productId"`
	ProductSlug     string          `json:"productSlug"`
	ProductName     string          `json:"productName"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	SupplierName    string          `json:"supplierName"`
	SupplierAddress string          `json:"supplierAddress"`
	Amount          int             `json:"amount"`
}

// Equal reports whether both line items carry the same values. Prices are
// compared numerically so 32 and 32.00 are equal.
func (l CartLineItem) Equal(o CartLineItem) bool {
	return l.SizeID == o.SizeID &&
		l.Name == o.Name &&
		l.ColorID == o.ColorID &&
		l.ColorName == o.ColorName &&
		l.ColorSlug == o.ColorSlug &&
		l.ColorHex == o.ColorHex &&
		l.ProductID == o.ProductID &&
		l.ProductSlug == o.ProductSlug &&
		l.ProductName == o.ProductName &&
		l.UnitPrice.Equal(o.UnitPrice) &&
		l.SupplierName == o.SupplierName &&
		l.SupplierAddress == o.SupplierAddress &&
		l.Amount == o.Amount
}

// Cart is the ordered list of line items held in a session. Insertion order is
// the display order.
type Cart []CartLineItem

// Equal compares carts element by element. A nil cart equals an empty one.
func (c Cart) Equal(o Cart) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if !c[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

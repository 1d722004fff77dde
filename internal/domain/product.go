package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Colors      []Color         `json:"colors"`
}

type Color struct {
	ID    string `json:"id"`
	Hex   string `json:"hex"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Sizes []Size `json:"sizes,omitempty"`
}

type Size struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Variant is the current catalog state of one size: the unit of stock tracking
// and the source of truth a cart line is checked against at checkout.
type Variant struct {
	SizeID          string          `json:"sizeId"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	StockAmount     int             `json:"stockAmount"`
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductSlug     string          `json:"productSlug"`
	ColorID         string          `json:"colorId"`
	ColorName       string          `json:"colorName"`
	ColorSlug       string          `json:"colorSlug,omitempty"`
	ColorHex        string          `json:"colorHex,omitempty"`
	SupplierName    string          `json:"supplierName"`
	SupplierAddress string          `json:"supplierAddress"`
}

// LineItem snapshots the variant into a cart line with the given amount.
func (v Variant) LineItem(amount int) CartLineItem {
	return CartLineItem{
		SizeID:          v.SizeID,
		Name:            v.Name,
		ColorID:         v.ColorID,
		ColorName:       v.ColorName,
		ColorSlug:       v.ColorSlug,
		ColorHex:        v.ColorHex,
		ProductID:       v.ProductID,
		ProductSlug:     v.ProductSlug,
		ProductName:     v.ProductName,
		UnitPrice:       v.Price,
		SupplierName:    v.SupplierName,
		SupplierAddress: v.SupplierAddress,
		Amount:          amount,
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusProcessing = "PROCESSING"

// Order is the record persisted by a successful checkout. Card data is masked:
// only the last four digits and the expiration string are kept.
type Order struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Company        string          `json:"company,omitempty"`
	Apartment      string          `json:"apartment,omitempty"`
	Address        string          `json:"address"`
	PostalCode     string          `json:"postalCode"`
	City           string          `json:"city"`
	Country        string          `json:"country"`
	Phone          string          `json:"phone"`
	ShippingMethod string          `json:"shippingMethod"`
	ShippingPrice  decimal.Decimal `json:"shippingPrice"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	Status         string          `json:"status"`
	LineItems      Cart            `json:"lineItems"`
	CardLastFour   string          `json:"cardLastFour"`
	CardExpiration string          `json:"cardExpiration"`
	CreatedAt      time.Time       `json:"createdAt"`
}

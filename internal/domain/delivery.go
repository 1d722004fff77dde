package domain

import "github.com/shopspring/decimal"

// DeliveryMethod is a server-side shipping option. Clients echo the title and
// price back on checkout; the price is only ever trusted from this table.
type DeliveryMethod struct {
	ID         int             `json:"id"`
	Title      string          `json:"title"`
	Turnaround string          `json:"turnaround"`
	Price      decimal.Decimal `json:"price"`
}

var DeliveryMethods = []DeliveryMethod{
	{ID: 1, Title: "Standard", Turnaround: "4–10 jours ouvrés", Price: decimal.NewFromInt(5)},
	{ID: 2, Title: "Express", Turnaround: "2–5 jours ouvrés", Price: decimal.NewFromInt(16)},
}

// DefaultDeliveryMethod is the method preselected on the cart page.
func DefaultDeliveryMethod() DeliveryMethod {
	return DeliveryMethods[0]
}

// DeliveryMethodByTitle looks up a method by its exact title.
func DeliveryMethodByTitle(title string) (DeliveryMethod, bool) {
	for _, m := range DeliveryMethods {
		if m.Title == title {
			return m, true
		}
	}
	return DeliveryMethod{}, false
}

package domain

import "time"

type CheckoutRequest struct {
	ProductID string
	Options   map[string]string
	Quote     ShippingQuote
}

// An OrderSummary is the finalized combination of product, chosen options and
// chosen shipping quote prior to payment handoff. Immutable once built.
type OrderSummary struct {
	ProductID       string
	ProductName     string
	UnitPrice       float64
	Options         map[string]string
	ShippingService string
	ShippingPrice   float64
	Total           float64
}

// A PlacedOrder is an order summary bound to its payment reference.
type PlacedOrder struct {
	Summary          OrderSummary
	PaymentReference string
	PlacedAt         time.Time
}

package service

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/animatoon/storefront/internal/core/domain"
)

// PlaceOrder builds the order summary for the selected product, options and
// shipping quote, creates the payment reference and emits the placed order.
func (s *Service) PlaceOrder(
	ctx context.Context, req domain.CheckoutRequest,
) (domain.PlacedOrder, error) {
	const op = "Service.PlaceOrder"

	if err := ctx.Err(); err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.catalog.FindByID(ctx, req.ProductID)
	if err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
	}

	summary, err := buildOrder(p, req.Options, req.Quote)
	if err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
	}

	ref, err := s.payment.CreateReference(ctx, summary)
	if err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
	}

	placed := domain.PlacedOrder{
		Summary:          summary,
		PaymentReference: ref,
		PlacedAt:         time.Now().UTC(),
	}

	if s.ordersProducer != nil {
		if err := s.ordersProducer.ProduceOrder(ctx, placed); err != nil {
			return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	return placed, nil
}

// buildOrder aggregates one checkout attempt. The options must supply exactly
// one allowed value for every option category the product defines, and a
// shipping quote must have been chosen.
func buildOrder(
	p domain.Product, options map[string]string, quote domain.ShippingQuote,
) (domain.OrderSummary, error) {
	if quote.ServiceName == "" || quote.Price <= 0 {
		return domain.OrderSummary{}, domain.IncompleteSelectionError{}
	}

	for category, allowed := range p.Options {
		chosen, ok := options[category]
		if !ok || chosen == "" {
			return domain.OrderSummary{}, domain.IncompleteSelectionError{
				Category: category,
			}
		}
		if !contains(allowed, chosen) {
			return domain.OrderSummary{}, domain.IncompleteSelectionError{
				Category: category,
			}
		}
	}

	for category := range options {
		if _, ok := p.Options[category]; !ok {
			return domain.OrderSummary{}, domain.IncompleteSelectionError{
				Category: category,
			}
		}
	}

	return domain.OrderSummary{
		ProductID:       p.ProductID,
		ProductName:     p.Name,
		UnitPrice:       p.Price,
		Options:         maps.Clone(options),
		ShippingService: quote.ServiceName,
		ShippingPrice:   quote.Price,
		Total:           domain.RoundMoney(p.Price + quote.Price),
	}, nil
}

func contains(vs []string, v string) bool {
	for _, s := range vs {
		if s == v {
			return true
		}
	}
	return false
}

package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
	"github.com/google/uuid"
)

var _ port.PaymentReferencer = (*ReferenceProvider)(nil)

const defaultPrefix = "TEST"

// A ReferenceProvider simulates the payment-provider preference API.
// A real provider would be called over the network here and could fail;
// the simulation always succeeds and only guarantees token uniqueness.
type ReferenceProvider struct {
	prefix string
}

func NewReferenceProvider(prefix string) ReferenceProvider {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return ReferenceProvider{prefix}
}

// CreateReference returns a fresh opaque payment reference for the order.
// The token carries no semantic meaning and is never reused.
func (p ReferenceProvider) CreateReference(
	ctx context.Context, summary domain.OrderSummary,
) (string, error) {
	const op = "ReferenceProvider.CreateReference"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	ref := fmt.Sprintf("%s-%s", p.prefix, uuid.NewString())

	slog.With("op", op).Debug(
		"payment reference created",
		"reference", ref,
		"productID", summary.ProductID,
		"total", summary.Total,
	)
	return ref, nil
}

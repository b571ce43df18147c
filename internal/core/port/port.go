package port

import (
	"context"
	"sync"

	"github.com/animatoon/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Inbound: the operations the presentation layer invokes.

type ProductsProvider interface {
	ListProducts(context.Context) ([]domain.Product, error)
	FindProduct(context.Context, string) (domain.Product, error)
}

type ShippingEstimator interface {
	EstimateShipping(context.Context, domain.EstimateRequest) ([]domain.ShippingQuote, error)
}

type OrderPlacer interface {
	PlaceOrder(context.Context, domain.CheckoutRequest) (domain.PlacedOrder, error)
}

type OrderProvider interface {
	FindOrder(context.Context, string) (domain.PlacedOrder, error)
}

// Inbound: the save paths the broker consumers invoke.

type OrdersSaver interface {
	SaveOrder(context.Context, domain.PlacedOrder) error
}

type EstimateEventsSaver interface {
	SaveEstimateEvents(context.Context, []domain.EstimateEvent) error
}

// Outbound.

type ProductFinder interface {
	List(context.Context) ([]domain.Product, error)
	FindByID(context.Context, string) (domain.Product, error)
}

type PaymentReferencer interface {
	CreateReference(context.Context, domain.OrderSummary) (string, error)
}

// An EstimateObserver receives shipping-estimation lifecycle events.
type EstimateObserver interface {
	ObserveEstimate(domain.EstimateEvent)
}

type OrdersProducer interface {
	ProduceOrder(context.Context, domain.PlacedOrder) error
}

type OrdersStorage interface {
	StoreOrder(context.Context, domain.PlacedOrder) error
	ReadOrder(context.Context, string) (domain.PlacedOrder, error)
}

type EstimateArchive interface {
	ArchiveEvents(context.Context, []domain.EstimateEvent) error
}

type EstimateStatsProvider interface {
	EstimateCount(string) (int64, error)
}

type EstimateStatsProcessor interface {
	runnerContextWg
	closer
}

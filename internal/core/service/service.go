package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
)

var _ port.ProductsProvider = (*Service)(nil)
var _ port.ShippingEstimator = (*Service)(nil)
var _ port.OrderPlacer = (*Service)(nil)
var _ port.OrderProvider = (*Service)(nil)
var _ port.OrdersSaver = (*Service)(nil)
var _ port.EstimateEventsSaver = (*Service)(nil)

// A Config wires the service dependencies.
//
// Catalog, Payment and Rates are required. OrdersStorage and Archive are
// required by the order read/save and event archive paths. OrdersProducer and
// StatsProc may be nil: PlaceOrder then skips producing and Run does nothing.
type Config struct {
	Catalog        port.ProductFinder
	Payment        port.PaymentReferencer
	Rates          domain.RatePolicy
	Latency        time.Duration
	OrdersProducer port.OrdersProducer
	OrdersStorage  port.OrdersStorage
	Archive        port.EstimateArchive
	StatsProc      port.EstimateStatsProcessor
}

type Service struct {
	catalog        port.ProductFinder
	payment        port.PaymentReferencer
	rates          domain.RatePolicy
	latency        time.Duration
	notifier       *estimateNotifier
	ordersProducer port.OrdersProducer
	ordersStorage  port.OrdersStorage
	archive        port.EstimateArchive
	statsProc      port.EstimateStatsProcessor
}

func New(c Config) *Service {
	return &Service{
		catalog:        c.Catalog,
		payment:        c.Payment,
		rates:          c.Rates,
		latency:        c.Latency,
		notifier:       newEstimateNotifier(),
		ordersProducer: c.OrdersProducer,
		ordersStorage:  c.OrdersStorage,
		archive:        c.Archive,
		statsProc:      c.StatsProc,
	}
}

// SubscribeEstimates registers an observer for estimation lifecycle events.
func (s *Service) SubscribeEstimates(o port.EstimateObserver) {
	s.notifier.subscribe(o)
}

// Run runs the service stream components in separate goroutines.
//
// Blocks current goroutine while components is preparing to ready state.
func (s *Service) Run(ctx context.Context, stopFn context.CancelFunc) {
	if s.statsProc == nil {
		return
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go s.statsProc.Run(ctx, stopFn, &wg)
	wg.Wait()
}

func (s *Service) Close() {
	if s.statsProc != nil {
		s.statsProc.Close()
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s *Service) FindProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "Service.FindProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Service) FindOrder(
	ctx context.Context, paymentReference string,
) (domain.PlacedOrder, error) {
	const op = "Service.FindOrder"

	if err := ctx.Err(); err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
	}

	v, err := s.ordersStorage.ReadOrder(ctx, paymentReference)
	if err != nil {
		return domain.PlacedOrder{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (s *Service) SaveOrder(ctx context.Context, v domain.PlacedOrder) error {
	const op = "Service.SaveOrder"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.ordersStorage.StoreOrder(ctx, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) SaveEstimateEvents(
	ctx context.Context, evts []domain.EstimateEvent,
) error {
	const op = "Service.SaveEstimateEvents"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.archive.ArchiveEvents(ctx, evts); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

package kafka

import (
	"context"
	"log/slog"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EstimateObserver = (*EstimateEventsProducer)(nil)
var _ port.OrdersProducer = (*OrdersProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// An EstimateEventsProducer publishes shipping-estimation lifecycle events.
// It doubles as the broker-side estimate observer: the service notifies it
// synchronously and produce failures are logged, never surfaced to the
// estimating caller.
type EstimateEventsProducer struct {
	ctx      context.Context
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewEstimateEventsProducer(
	ctx context.Context, opts ...ProducerOpt,
) (EstimateEventsProducer, error) {
	const op = "NewEstimateEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return EstimateEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "EstimateEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return EstimateEventsProducer{
		ctx:      ctx,
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p EstimateEventsProducer) Close() {
	p.producer.close()
}

func (p EstimateEventsProducer) ObserveEstimate(evt domain.EstimateEvent) {
	const op = "ObserveEstimate"

	err := p.ProduceEstimateEvent(p.ctx, evt)
	if err != nil {
		slog.With("op", makeOp(p.opPrefix, op)).Error(
			"failed to produce estimate event", "err", err,
		)
	}
}

func (p EstimateEventsProducer) ProduceEstimateEvent(
	ctx context.Context, evt domain.EstimateEvent,
) error {
	const op = "ProduceEstimateEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p EstimateEventsProducer) createRecord(
	evt domain.EstimateEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := estimateEventToSchemaV1(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(destinationPrefix(s.DestinationCEP))
	return &kgo.Record{Key: msgKey, Value: b}, nil
}

// An OrdersProducer publishes placed orders for asynchronous persistence.
type OrdersProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewOrdersProducer(
	opts ...ProducerOpt,
) (OrdersProducer, error) {
	const op = "NewOrdersProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrdersProducer{}, opErr(err, op)
		}
	}

	opPrefix := "OrdersProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return OrdersProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p OrdersProducer) Close() {
	p.producer.close()
}

func (p OrdersProducer) ProduceOrder(
	ctx context.Context, v domain.PlacedOrder,
) error {
	const op = "ProduceOrder"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(v)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p OrdersProducer) createRecord(
	v domain.PlacedOrder,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := placedOrderToSchemaV1(v)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(s.PaymentReference)
	return &kgo.Record{Key: msgKey, Value: b}, nil
}

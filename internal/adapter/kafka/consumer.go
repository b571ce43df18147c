package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
	"github.com/animatoon/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

// A consumer is used for composition.
//
// Fetching records from kafka broker and closing underlying [kgo.Client].

type consumerParent interface {
	processFetches(context.Context, kgo.Fetches) error
}

type consumer struct {
	opPrefix      string
	parent        consumerParent
	cl            ConsumerClient
	slowDownTimer *time.Timer
}

func (c consumer) run(ctx context.Context) {
	const op = "run"
	log := slog.With("op", makeOp(c.opPrefix, op))

	log.Info("running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				log.Error("failed to consume", "err", err)
				c.slowDown()
			}
		}
	}
}

func (c consumer) consume(ctx context.Context) error {
	const op = "consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	if fetches.Empty() {
		return nil
	}

	err = c.parent.processFetches(ctx, fetches)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.commit(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	err := c.handleFetchesErrs(fetches)
	if err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	return fetches, nil
}

func (c consumer) handleFetchesErrs(fetches kgo.Fetches) error {
	var errsMessages []string
	fetches.EachError(func(t string, p int32, err error) {
		if err != nil {
			errMsg := fmt.Sprintf(
				"topic %q partition %d: %q", t, p, err,
			)
			errsMessages = append(errsMessages, errMsg)
		}
	})

	if len(errsMessages) != 0 {
		return errors.New(strings.Join(errsMessages, "; "))
	}
	return nil
}

func (c consumer) slowDown() {
	c.slowDownTimer.Reset(1 * time.Second)
	<-c.slowDownTimer.C
}

func (c consumer) commit(ctx context.Context) error {
	const op = "commit"

	err := ctx.Err()
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.cl.CommitUncommittedOffsets(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) close() {
	const op = "close"
	log := slog.With("op", makeOp(c.opPrefix, op))

	c.slowDownTimer.Stop()

	log.Info("closing consumer...")
	c.cl.Close()
	log.Info("consumer is closed")
}

// An OrdersConsumer consumes placed orders
// then sends to the core service for persistence.
type OrdersConsumer struct {
	opPrefix string
	consumer consumer
	saver    port.OrdersSaver
	decoder  Decoder
}

func NewOrdersConsumer(opts ...ConsumerOpt) (oc OrdersConsumer, err error) {
	const op = "NewOrdersConsumer"

	var options consumerOpts
	if err := options.apply(opts...); err != nil {
		return oc, opErr(err, op)
	}

	opPrefix := "OrdersConsumer"

	oc.opPrefix = opPrefix
	oc.saver = options.ordersSaver
	oc.decoder = options.decoder

	oc.consumer = consumer{
		opPrefix:      opPrefix,
		parent:        oc,
		cl:            options.cl,
		slowDownTimer: time.NewTimer(0),
	}

	return oc, nil
}

func (c OrdersConsumer) Run(ctx context.Context) {
	c.consumer.run(ctx)
}

func (c OrdersConsumer) Close() {
	c.consumer.close()
}

func (c OrdersConsumer) processFetches(
	ctx context.Context, fetches kgo.Fetches,
) error {
	const op = "processFetches"

	values := c.toDomain(fetches)
	if len(values) == 0 {
		return nil
	}

	for _, v := range values {
		if err := c.saver.SaveOrder(ctx, v); err != nil {
			return opErr(err, c.opPrefix, op)
		}
	}
	return nil
}

func (c OrdersConsumer) toDomain(
	fetches kgo.Fetches,
) (vs []domain.PlacedOrder) {
	const op = "toDomain"
	log := slog.With("op", makeOp(c.opPrefix, op))

	fetches.EachRecord(func(r *kgo.Record) {
		v, err := c.decodeRecValue(r)
		if err != nil {
			log.Error(
				"failed to decode value",
				"err", opErr(err, c.opPrefix, op),
			)
			return
		}
		vs = append(vs, v)
	})
	return vs
}

func (c OrdersConsumer) decodeRecValue(
	r *kgo.Record,
) (domain.PlacedOrder, error) {
	var s schema.PlacedOrderV1
	err := c.decoder.Decode(r.Value, &s)
	if err != nil {
		return domain.PlacedOrder{}, err
	}
	return schemaV1ToPlacedOrder(s), nil
}

// An EstimateEventsConsumer consumes estimation lifecycle events
// then sends to the core service for archiving.
type EstimateEventsConsumer struct {
	opPrefix string
	consumer consumer
	saver    port.EstimateEventsSaver
	decoder  Decoder
}

func NewEstimateEventsConsumer(
	opts ...ConsumerOpt,
) (ec EstimateEventsConsumer, err error) {
	const op = "NewEstimateEventsConsumer"

	var options consumerOpts
	if err := options.apply(opts...); err != nil {
		return ec, opErr(err, op)
	}

	opPrefix := "EstimateEventsConsumer"

	ec.opPrefix = opPrefix
	ec.saver = options.estimateEventsSaver
	ec.decoder = options.decoder

	ec.consumer = consumer{
		opPrefix:      opPrefix,
		parent:        ec,
		cl:            options.cl,
		slowDownTimer: time.NewTimer(0),
	}

	return ec, nil
}

func (c EstimateEventsConsumer) Run(ctx context.Context) {
	c.consumer.run(ctx)
}

func (c EstimateEventsConsumer) Close() {
	c.consumer.close()
}

func (c EstimateEventsConsumer) processFetches(
	ctx context.Context, fetches kgo.Fetches,
) error {
	const op = "processFetches"

	values := c.toDomain(fetches)
	if len(values) == 0 {
		return nil
	}

	err := c.saver.SaveEstimateEvents(ctx, values)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c EstimateEventsConsumer) toDomain(
	fetches kgo.Fetches,
) (vs []domain.EstimateEvent) {
	const op = "toDomain"
	log := slog.With("op", makeOp(c.opPrefix, op))

	fetches.EachRecord(func(r *kgo.Record) {
		v, err := c.decodeRecValue(r)
		if err != nil {
			log.Error(
				"failed to decode value",
				"err", opErr(err, c.opPrefix, op),
			)
			return
		}
		vs = append(vs, v)
	})
	return vs
}

func (c EstimateEventsConsumer) decodeRecValue(
	r *kgo.Record,
) (domain.EstimateEvent, error) {
	var s schema.EstimateEventV1
	err := c.decoder.Decode(r.Value, &s)
	if err != nil {
		return domain.EstimateEvent{}, err
	}
	return schemaV1ToEstimateEvent(s), nil
}

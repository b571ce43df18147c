package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
	"github.com/animatoon/storefront/pkg/schema"
	"github.com/lovoo/goka"
)

var _ port.EstimateStatsProcessor = (*EstimateStatsProc)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An estimateEventCodec used for serde [schema.EstimateEventV1]
type estimateEventCodec struct {
	serde Serde
}

func newEstimateEventCodec(s Serde) estimateEventCodec {
	return estimateEventCodec{s}
}

func (c estimateEventCodec) Encode(v any) ([]byte, error) {
	const op = "estimateEventCodec.Encode"
	if _, ok := v.(schema.EstimateEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c estimateEventCodec) Decode(data []byte) (any, error) {
	const op = "estimateEventCodec.Decode"
	var s schema.EstimateEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A countValue is the running number of successful estimates
// for one destination prefix.
type countValue int64

// A countValueCodec used for serde [countValue]
type countValueCodec struct{}

func (countValueCodec) Encode(v any) ([]byte, error) {
	const op = "countValueCodec.Encode"
	cv, ok := v.(countValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data := strconv.AppendInt([]byte(nil), int64(cv), 10)
	return data, nil
}

func (countValueCodec) Decode(data []byte) (any, error) {
	const op = "countValueCodec.Decode"
	cv, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return countValue(cv), nil
}

// An EstimateStatsProc counts successful estimates per destination prefix
// from the events stream into a group table.
type EstimateStatsProc struct {
	opPrefix string
	proc     processor
}

func NewEstimateStatsProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	estimateEventSerde Serde,
) (*EstimateStatsProc, error) {
	const op = "NewEstimateStatsProc"

	var p EstimateStatsProc
	p.opPrefix = "EstimateStatsProc"

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newEstimateEventCodec(estimateEventSerde),
			p.processFn,
		),
		goka.Persist(countValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *EstimateStatsProc) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *EstimateStatsProc) Close() {
	p.proc.close()
}

func (p *EstimateStatsProc) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.EstimateEventV1)
	if event.Kind != string(domain.EstimateSucceeded) {
		return
	}

	var count countValue
	if v := ctx.Value(); v != nil {
		count, _ = v.(countValue)
	}
	count++
	ctx.SetValue(count)

	log.Info(
		"estimate counted",
		"destinationPrefix", ctx.Key(),
		"count", int64(count),
	)
}

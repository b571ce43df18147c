package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/animatoon/storefront/internal/core/port"
	"github.com/lovoo/goka"
)

var _ port.EstimateStatsProvider = (*EstimateStatsView)(nil)

// An EstimateStatsViewConfig used for setup [EstimateStatsView].
//
// All fields are required.
type EstimateStatsViewConfig struct {
	SeedBrokers []string
	GroupTable  string
}

// An EstimateStatsView reads the successful-estimate counts
// maintained by [EstimateStatsProc].
type EstimateStatsView struct {
	gv *goka.View
}

func NewEstimateStatsView(
	config EstimateStatsViewConfig,
) (*EstimateStatsView, error) {
	const op = "NewEstimateStatsView"

	gv, err := goka.NewView(
		config.SeedBrokers,
		goka.GroupTable(goka.Group(config.GroupTable)),
		countValueCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &EstimateStatsView{gv}, nil
}

func (v *EstimateStatsView) Run(ctx context.Context) {
	const op = "EstimateStatsView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// EstimateCount returns the number of successful estimates
// observed for the destination prefix. Unknown prefixes count zero.
func (v *EstimateStatsView) EstimateCount(prefix string) (int64, error) {
	const op = "EstimateStatsView.EstimateCount"

	value, err := v.gv.Get(prefix)
	if err != nil {
		return 0, opErr(err, op)
	}

	if value == nil {
		return 0, nil
	}

	count, ok := value.(countValue)
	if !ok {
		return 0, opErr(
			fmt.Errorf("%w: %T", ErrInvalidValueType, value), op,
		)
	}
	return int64(count), nil
}

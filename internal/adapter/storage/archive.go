package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
	"github.com/animatoon/storefront/pkg/retry"
	"github.com/colinmarc/hdfs/v2"
)

var _ port.EstimateArchive = (*EstimateEventsRepository)(nil)

type (
	estimateEvent struct {
		Kind           string          `json:"kind"`
		OriginCEP      string          `json:"origin_cep"`
		DestinationCEP string          `json:"destination_cep"`
		Reason         string          `json:"reason,omitempty"`
		At             int64           `json:"at_unix_ms"`
		Quotes         []shippingQuote `json:"quotes,omitempty"`
	}

	shippingQuote struct {
		ServiceCode      string  `json:"service_code"`
		ServiceName      string  `json:"service_name"`
		Price            float64 `json:"price"`
		DeliveryDays     int     `json:"delivery_days"`
		HomeDelivery     bool    `json:"home_delivery"`
		SaturdayDelivery bool    `json:"saturday_delivery"`
	}
)

// An EstimateEventsRepository archives estimation lifecycle events
// as JSON lines, one file per destination prefix.
type EstimateEventsRepository struct {
	hdfs hdfsStorage
}

func NewEstimateEventsRepository(hdfs hdfsStorage) EstimateEventsRepository {
	return EstimateEventsRepository{hdfs}
}

func (r EstimateEventsRepository) ArchiveEvents(
	ctx context.Context, evts []domain.EstimateEvent,
) error {
	const op = "EstimateEventsRepository.ArchiveEvents"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for prefix, group := range r.groupByPrefix(evts) {
		if err := r.storeGroup(ctx, prefix, group); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (r EstimateEventsRepository) groupByPrefix(
	evts []domain.EstimateEvent,
) map[string][]domain.EstimateEvent {
	groups := make(map[string][]domain.EstimateEvent)
	for _, evt := range evts {
		prefix := evt.DestinationCEP
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		groups[prefix] = append(groups[prefix], evt)
	}
	return groups
}

func (r EstimateEventsRepository) storeGroup(
	ctx context.Context, prefix string, evts []domain.EstimateEvent,
) error {
	w, err := r.createWriter(r.getFileName(prefix))
	if err != nil {
		return err
	}

	err = r.saveEvents(w, evts)
	if err != nil {
		return err
	}

	return r.closeWriter(ctx, w)
}

func (r EstimateEventsRepository) getFileName(prefix string) string {
	return "/" + prefix
}

func (r EstimateEventsRepository) createWriter(
	filepath string,
) (io.WriteCloser, error) {
	w, err := r.hdfs.Append(filepath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		w, err = r.hdfs.Create(filepath)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (r EstimateEventsRepository) saveEvents(
	w io.WriteCloser, evts []domain.EstimateEvent,
) error {
	for _, evt := range evts {
		v := r.toEstimateEvent(evt)
		err := json.NewEncoder(w).Encode(v)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r EstimateEventsRepository) closeWriter(
	ctx context.Context, w io.WriteCloser,
) error {
	retryCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.LineareBackoff(50 * time.Millisecond),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, hdfs.ErrReplicating)
		},
	}

	err := retry.Do(ctx, retryCfg, w.Close)
	if err != nil {
		return err
	}

	return nil
}

func (r EstimateEventsRepository) toEstimateEvent(
	evt domain.EstimateEvent,
) (v estimateEvent) {
	v.Kind = string(evt.Kind)
	v.OriginCEP = evt.OriginCEP
	v.DestinationCEP = evt.DestinationCEP
	v.Reason = evt.Reason
	v.At = evt.At.UnixMilli()
	for _, q := range evt.Quotes {
		v.Quotes = append(v.Quotes, shippingQuote{
			ServiceCode:      q.ServiceCode,
			ServiceName:      q.ServiceName,
			Price:            q.Price,
			DeliveryDays:     q.DeliveryDays,
			HomeDelivery:     q.HomeDelivery,
			SaturdayDelivery: q.SaturdayDelivery,
		})
	}
	return
}

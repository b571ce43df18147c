package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/animatoon/storefront/internal/core/domain"
)

// EstimateShipping validates the request, simulates the carrier latency and
// returns the tier quotes, standard before express. Validation failures are
// reported before the latency step begins; no partial results are returned.
func (s *Service) EstimateShipping(
	ctx context.Context, req domain.EstimateRequest,
) ([]domain.ShippingQuote, error) {
	const op = "Service.EstimateShipping"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	origin := domain.NormalizeCEP(req.OriginCEP)
	destination := domain.NormalizeCEP(req.DestinationCEP)

	s.notifier.publish(domain.EstimateEvent{
		Kind:           domain.EstimateStarted,
		OriginCEP:      origin,
		DestinationCEP: destination,
		At:             time.Now().UTC(),
	})

	if err := validateEstimate(origin, destination, req.Parcel); err != nil {
		s.notifier.publish(domain.EstimateEvent{
			Kind:           domain.EstimateFailed,
			OriginCEP:      origin,
			DestinationCEP: destination,
			Reason:         err.Error(),
			At:             time.Now().UTC(),
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	distance := distanceProxy(origin, destination)
	quotes := []domain.ShippingQuote{
		quoteFor(s.rates.Standard, distance, req.Parcel),
		quoteFor(s.rates.Express, distance, req.Parcel),
	}

	s.notifier.publish(domain.EstimateEvent{
		Kind:           domain.EstimateSucceeded,
		OriginCEP:      origin,
		DestinationCEP: destination,
		Quotes:         quotes,
		At:             time.Now().UTC(),
	})

	return quotes, nil
}

// validateEstimate applies the carrier input rules in their documented order;
// the first failing rule wins.
func validateEstimate(
	origin, destination string, p domain.ParcelSpec,
) error {
	if len(origin) != 8 {
		return domain.ValidationError{Reason: "invalid origin postal code"}
	}
	if len(destination) != 8 {
		return domain.ValidationError{Reason: "invalid destination postal code"}
	}
	if math.IsNaN(p.WeightKg) || p.WeightKg <= 0 || p.WeightKg > 30 {
		return domain.ValidationError{
			Reason: "weight must be greater than 0 and at most 30 kg",
		}
	}
	if math.IsNaN(p.LengthCm) || p.LengthCm < 16 || p.LengthCm > 105 {
		return domain.ValidationError{
			Reason: "length must be between 16 and 105 cm",
		}
	}
	if math.IsNaN(p.WidthCm) || p.WidthCm < 11 || p.WidthCm > 105 {
		return domain.ValidationError{
			Reason: "width must be between 11 and 105 cm",
		}
	}
	if math.IsNaN(p.HeightCm) || p.HeightCm < 2 || p.HeightCm > 105 {
		return domain.ValidationError{
			Reason: "height must be between 2 and 105 cm",
		}
	}
	if p.DimensionsSum() > 200 {
		return domain.ValidationError{
			Reason: "dimensions sum must not exceed 200 cm",
		}
	}
	return nil
}

// distanceProxy is the absolute difference between the numeric values of the
// first three digits of two normalized postal codes.
func distanceProxy(origin, destination string) int {
	o, _ := strconv.Atoi(origin[:3])
	d, _ := strconv.Atoi(destination[:3])
	if o > d {
		return o - d
	}
	return d - o
}

func quoteFor(
	rate domain.ServiceRate, distance int, p domain.ParcelSpec,
) domain.ShippingQuote {
	price := rate.Base +
		rate.PerDistance*float64(distance) +
		rate.PerKg*p.WeightKg +
		rate.PerCubicCm*p.VolumeCm3()

	days := distance/rate.DaysDivisor + rate.DaysOffset
	if days < rate.MinDays {
		days = rate.MinDays
	}
	if days > rate.MaxDays {
		days = rate.MaxDays
	}

	return domain.ShippingQuote{
		ServiceCode:      rate.Code,
		ServiceName:      rate.Name,
		Price:            domain.RoundMoney(price),
		DeliveryDays:     days,
		HomeDelivery:     rate.HomeDelivery,
		SaturdayDelivery: rate.SaturdayDelivery,
	}
}

// simulateLatency stands in for the carrier round trip. The wait honors
// context cancellation; a zero latency skips the timer entirely.
func (s *Service) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

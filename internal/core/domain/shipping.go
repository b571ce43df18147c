package domain

import (
	"math"
	"strings"
	"time"
)

// A ParcelSpec describes the physical package used to price shipping.
type ParcelSpec struct {
	WeightKg float64
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

func (p ParcelSpec) VolumeCm3() float64 {
	return p.LengthCm * p.WidthCm * p.HeightCm
}

func (p ParcelSpec) DimensionsSum() float64 {
	return p.LengthCm + p.WidthCm + p.HeightCm
}

type EstimateRequest struct {
	OriginCEP      string
	DestinationCEP string
	Parcel         ParcelSpec
}

type ShippingQuote struct {
	ServiceCode      string
	ServiceName      string
	Price            float64
	DeliveryDays     int
	HomeDelivery     bool
	SaturdayDelivery bool
}

// A ServiceRate holds the simulation pricing constants for one shipping tier.
//
// Price = Base + PerDistance*distance + PerKg*weight + PerCubicCm*volume.
// DeliveryDays = clamp(distance/DaysDivisor + DaysOffset, MinDays, MaxDays).
type ServiceRate struct {
	Code             string
	Name             string
	Base             float64
	PerDistance      float64
	PerKg            float64
	PerCubicCm       float64
	DaysDivisor      int
	DaysOffset       int
	MinDays          int
	MaxDays          int
	HomeDelivery     bool
	SaturdayDelivery bool
}

// A RatePolicy is the full set of tier rates, standard listed before express.
type RatePolicy struct {
	Standard ServiceRate
	Express  ServiceRate
}

// DefaultRatePolicy returns the carrier-less simulation constants.
// The values are a policy choice with no real-world basis; only the formula
// shape, the quote ordering and the day clamps are contractual.
func DefaultRatePolicy() RatePolicy {
	return RatePolicy{
		Standard: ServiceRate{
			Code:             "04510",
			Name:             "PAC",
			Base:             15,
			PerDistance:      0.02,
			PerKg:            5,
			PerCubicCm:       0.000025,
			DaysDivisor:      100,
			DaysOffset:       3,
			MinDays:          3,
			MaxDays:          15,
			HomeDelivery:     true,
			SaturdayDelivery: false,
		},
		Express: ServiceRate{
			Code:             "04014",
			Name:             "SEDEX",
			Base:             25,
			PerDistance:      0.04,
			PerKg:            7.5,
			PerCubicCm:       0.00005,
			DaysDivisor:      300,
			DaysOffset:       1,
			MinDays:          1,
			MaxDays:          5,
			HomeDelivery:     true,
			SaturdayDelivery: true,
		},
	}
}

// NormalizeCEP strips every non-digit character from a postal code.
func NormalizeCEP(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RoundMoney rounds a non-negative amount half-up to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

type EstimateEventKind string

const (
	EstimateStarted   EstimateEventKind = "started"
	EstimateSucceeded EstimateEventKind = "succeeded"
	EstimateFailed    EstimateEventKind = "failed"
)

// An EstimateEvent is one shipping-estimation lifecycle notification.
type EstimateEvent struct {
	Kind           EstimateEventKind
	OriginCEP      string
	DestinationCEP string
	Quotes         []ShippingQuote
	Reason         string
	At             time.Time
}

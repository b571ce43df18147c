package domain_test

import (
	"testing"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCEP(t *testing.T) {
	assert.Equal(t, "01310100", domain.NormalizeCEP("01310-100"))
	assert.Equal(t, "01310100", domain.NormalizeCEP(" 01.310-100 "))
	assert.Equal(t, "", domain.NormalizeCEP("abc"))
}

func TestRoundMoney(t *testing.T) {
	assert.InDelta(t, 185.40, domain.RoundMoney(149.90+35.50), 1e-9)
	// 21.125 is exact in binary, half-up picks 21.13 over 21.12
	assert.InDelta(t, 21.13, domain.RoundMoney(21.125), 1e-9)
	assert.InDelta(t, 21.38, domain.RoundMoney(21.375), 1e-9)
	assert.InDelta(t, 0.0, domain.RoundMoney(0), 1e-9)
}

func TestParcelSpec(t *testing.T) {
	p := domain.ParcelSpec{WeightKg: 0.5, LengthCm: 20, WidthCm: 15, HeightCm: 10}
	assert.InDelta(t, 3000.0, p.VolumeCm3(), 1e-9)
	assert.InDelta(t, 45.0, p.DimensionsSum(), 1e-9)
}

func TestProductParcel(t *testing.T) {
	p := domain.Product{
		WeightKg:   0.7,
		Dimensions: domain.Dimensions{LengthCm: 15, WidthCm: 20, HeightCm: 25},
	}
	assert.Equal(t, domain.ParcelSpec{
		WeightKg: 0.7, LengthCm: 15, WidthCm: 20, HeightCm: 25,
	}, p.Parcel())
}

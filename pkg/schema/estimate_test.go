package schema

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateEventV1(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		vMarshal := EstimateEventV1{
			Kind:           "succeeded",
			OriginCEP:      "01310100",
			DestinationCEP: "20040020",
			AtUnixMs:       1700000000000,
			Quotes: []ShippingQuoteV1{
				{
					ServiceCode:      "04510",
					ServiceName:      "PAC",
					Price:            21.32,
					DeliveryDays:     4,
					HomeDelivery:     true,
					SaturdayDelivery: false,
				},
				{
					ServiceCode:      "04014",
					ServiceName:      "SEDEX",
					Price:            36.38,
					DeliveryDays:     1,
					HomeDelivery:     true,
					SaturdayDelivery: true,
				},
			},
		}

		var eventSchema avro.Schema
		require.NotPanics(t, func() {
			eventSchema = EstimateEventV1Avro()
		})

		data, err := avro.Marshal(eventSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal EstimateEventV1
		err = avro.Unmarshal(eventSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal.Kind, vUnmarshal.Kind)
		assert.Equal(t, vMarshal.OriginCEP, vUnmarshal.OriginCEP)
		assert.Equal(t, vMarshal.DestinationCEP, vUnmarshal.DestinationCEP)
		assert.Equal(t, vMarshal.Reason, vUnmarshal.Reason)
		assert.Equal(t, vMarshal.AtUnixMs, vUnmarshal.AtUnixMs)

		require.Len(t, vUnmarshal.Quotes, len(vMarshal.Quotes))
		for i, q := range vUnmarshal.Quotes {
			assert.Equal(t, vMarshal.Quotes[i], q)
		}
	})

	t.Run("Failed", func(t *testing.T) {
		vMarshal := EstimateEventV1{
			Kind:           "failed",
			OriginCEP:      "01310100",
			DestinationCEP: "2004002",
			Reason:         "invalid destination postal code",
			AtUnixMs:       1700000000000,
			Quotes:         []ShippingQuoteV1{},
		}

		data, err := avro.Marshal(EstimateEventV1Avro(), vMarshal)
		require.NoError(t, err)

		var vUnmarshal EstimateEventV1
		err = avro.Unmarshal(EstimateEventV1Avro(), data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal.Reason, vUnmarshal.Reason)
		assert.Empty(t, vUnmarshal.Quotes)
	})
}

func TestPlacedOrderV1(t *testing.T) {
	vMarshal := PlacedOrderV1{
		ProductID:        "luminaria-acdc",
		ProductName:      "Luminária ACDC",
		UnitPrice:        149.90,
		Options:          map[string]string{"modelos": "Feliz"},
		ShippingService:  "PAC",
		ShippingPrice:    35.50,
		Total:            185.40,
		PaymentReference: "TEST-7b0d7f29",
		PlacedAtUnixMs:   1700000000000,
	}

	var orderSchema avro.Schema
	require.NotPanics(t, func() {
		orderSchema = PlacedOrderV1Avro()
	})

	data, err := avro.Marshal(orderSchema, vMarshal)
	require.NoError(t, err)

	var vUnmarshal PlacedOrderV1
	err = avro.Unmarshal(orderSchema, data, &vUnmarshal)
	require.NoError(t, err)

	assert.Equal(t, vMarshal.ProductID, vUnmarshal.ProductID)
	assert.Equal(t, vMarshal.ProductName, vUnmarshal.ProductName)
	assert.Equal(t, vMarshal.UnitPrice, vUnmarshal.UnitPrice)
	assert.Equal(t, vMarshal.ShippingService, vUnmarshal.ShippingService)
	assert.Equal(t, vMarshal.ShippingPrice, vUnmarshal.ShippingPrice)
	assert.Equal(t, vMarshal.Total, vUnmarshal.Total)
	assert.Equal(t, vMarshal.PaymentReference, vUnmarshal.PaymentReference)
	assert.Equal(t, vMarshal.PlacedAtUnixMs, vUnmarshal.PlacedAtUnixMs)

	require.Len(t, vUnmarshal.Options, len(vMarshal.Options))
	for k, v := range vUnmarshal.Options {
		assert.Equal(t, vMarshal.Options[k], v)
	}
}

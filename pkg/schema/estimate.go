package schema

import "github.com/hamba/avro/v2"

const EstimateEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "estimate_event",
	"fields": [
		{"name": "kind", "type": "string"},
		{"name": "origin_cep", "type": "string"},
		{"name": "destination_cep", "type": "string"},
		{"name": "reason", "type": "string"},
		{"name": "at_unix_ms", "type": "long"},
		{"name": "quotes", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "shipping_quote",
				"fields": [
					{"name": "service_code", "type": "string"},
					{"name": "service_name", "type": "string"},
					{"name": "price", "type": "double"},
					{"name": "delivery_days", "type": "long"},
					{"name": "home_delivery", "type": "boolean"},
					{"name": "saturday_delivery", "type": "boolean"}
				]
			}
		}}
	]
}`

type (
	EstimateEventV1 struct {
		Kind           string            `avro:"kind"`
		OriginCEP      string            `avro:"origin_cep"`
		DestinationCEP string            `avro:"destination_cep"`
		Reason         string            `avro:"reason"`
		AtUnixMs       int64             `avro:"at_unix_ms"`
		Quotes         []ShippingQuoteV1 `avro:"quotes"`
	}

	ShippingQuoteV1 struct {
		ServiceCode      string  `avro:"service_code"`
		ServiceName      string  `avro:"service_name"`
		Price            float64 `avro:"price"`
		DeliveryDays     int64   `avro:"delivery_days"`
		HomeDelivery     bool    `avro:"home_delivery"`
		SaturdayDelivery bool    `avro:"saturday_delivery"`
	}
)

func EstimateEventV1Avro() avro.Schema {
	return avro.MustParse(EstimateEventSchemaTextV1)
}

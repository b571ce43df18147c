package schema

import "github.com/hamba/avro/v2"

const PlacedOrderSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "placed_order",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "product_name", "type": "string"},
		{"name": "unit_price", "type": "double"},
		{"name": "options", "type": {"type": "map", "values": "string"}},
		{"name": "shipping_service", "type": "string"},
		{"name": "shipping_price", "type": "double"},
		{"name": "total", "type": "double"},
		{"name": "payment_reference", "type": "string"},
		{"name": "placed_at_unix_ms", "type": "long"}
	]
}`

type PlacedOrderV1 struct {
	ProductID        string            `avro:"product_id"`
	ProductName      string            `avro:"product_name"`
	UnitPrice        float64           `avro:"unit_price"`
	Options          map[string]string `avro:"options"`
	ShippingService  string            `avro:"shipping_service"`
	ShippingPrice    float64           `avro:"shipping_price"`
	Total            float64           `avro:"total"`
	PaymentReference string            `avro:"payment_reference"`
	PlacedAtUnixMs   int64             `avro:"placed_at_unix_ms"`
}

func PlacedOrderV1Avro() avro.Schema {
	return avro.MustParse(PlacedOrderSchemaTextV1)
}

package httphandler

type (
	Product struct {
		ProductID   string              `json:"product_id"`
		Name        string              `json:"name"`
		Price       float64             `json:"price"`
		Description string              `json:"description"`
		Images      []string            `json:"images"`
		Categories  []string            `json:"categories"`
		WeightKg    float64             `json:"weight_kg"`
		Dimensions  ProductDimensions   `json:"dimensions_cm"`
		Options     map[string][]string `json:"options,omitempty"`
	}

	ProductDimensions struct {
		Length float64 `json:"length"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
)

type (
	EstimateRequest struct {
		OriginCEP      string `json:"origin_cep"`
		DestinationCEP string `json:"destination_cep"`
		Parcel         Parcel `json:"parcel"`
	}

	Parcel struct {
		WeightKg float64 `json:"weight_kg"`
		LengthCm float64 `json:"length_cm"`
		WidthCm  float64 `json:"width_cm"`
		HeightCm float64 `json:"height_cm"`
	}

	ShippingQuote struct {
		ServiceCode      string  `json:"service_code"`
		ServiceName      string  `json:"service_name"`
		Price            float64 `json:"price"`
		DeliveryDays     int     `json:"delivery_days"`
		HomeDelivery     bool    `json:"home_delivery"`
		SaturdayDelivery bool    `json:"saturday_delivery"`
	}
)

type (
	CheckoutRequest struct {
		ProductID string            `json:"product_id"`
		Options   map[string]string `json:"options,omitempty"`
		Quote     ShippingQuote     `json:"quote"`
	}

	PlacedOrder struct {
		PaymentReference string            `json:"payment_reference"`
		ProductID        string            `json:"product_id"`
		ProductName      string            `json:"product_name"`
		UnitPrice        float64           `json:"unit_price"`
		Options          map[string]string `json:"options,omitempty"`
		ShippingService  string            `json:"shipping_service"`
		ShippingPrice    float64           `json:"shipping_price"`
		Total            float64           `json:"total"`
		PlacedAt         string            `json:"placed_at"`
	}
)

type EstimateStats struct {
	DestinationPrefix string `json:"destination_prefix"`
	Count             int64  `json:"count"`
}

package domain

type (
	Product struct {
		ProductID   string
		Name        string
		Price       float64
		Description string
		Images      []string
		Categories  []string
		WeightKg    float64
		Dimensions  Dimensions
		Options     map[string][]string
	}

	// Dimensions are the parcel-relevant product measures in centimeters.
	Dimensions struct {
		LengthCm float64
		WidthCm  float64
		HeightCm float64
	}
)

// Parcel derives the shipping parcel from the product measures.
func (p Product) Parcel() ParcelSpec {
	return ParcelSpec{
		WeightKg: p.WeightKg,
		LengthCm: p.Dimensions.LengthCm,
		WidthCm:  p.Dimensions.WidthCm,
		HeightCm: p.Dimensions.HeightCm,
	}
}

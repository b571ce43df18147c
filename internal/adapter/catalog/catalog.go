package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/animatoon/storefront/internal/core/port"
)

var _ port.ProductFinder = (*Catalog)(nil)

type (
	seedProduct struct {
		ProductID   string              `json:"product_id"`
		Name        string              `json:"name"`
		Price       float64             `json:"price"`
		Description string              `json:"description"`
		Images      []string            `json:"images"`
		Categories  []string            `json:"categories"`
		WeightKg    float64             `json:"weight_kg"`
		Dimensions  seedDimensions      `json:"dimensions_cm"`
		Options     map[string][]string `json:"options"`
	}

	seedDimensions struct {
		Length float64 `json:"length"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
)

// A Catalog is the immutable product store, seeded once at startup.
// It is the single source of truth for product data; callers receive copies
// and unknown identifiers are a hard failure, never a fallback product.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// Load reads and validates the JSON seed file.
func Load(path string) (Catalog, error) {
	const op = "catalog.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	var seed []seedProduct
	if err := json.Unmarshal(data, &seed); err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	c := Catalog{byID: make(map[string]int, len(seed))}
	for i, sp := range seed {
		p, err := toDomain(sp)
		if err != nil {
			return Catalog{}, fmt.Errorf("%s: product %d: %w", op, i, err)
		}
		if _, exists := c.byID[p.ProductID]; exists {
			return Catalog{}, fmt.Errorf(
				"%s: duplicate product id %q", op, p.ProductID,
			)
		}
		c.byID[p.ProductID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

func toDomain(sp seedProduct) (domain.Product, error) {
	if sp.ProductID == "" {
		return domain.Product{}, fmt.Errorf("empty product id")
	}
	if sp.Price < 0 {
		return domain.Product{}, fmt.Errorf("negative price %v", sp.Price)
	}
	if len(sp.Images) == 0 {
		return domain.Product{}, fmt.Errorf("no images")
	}
	if sp.WeightKg <= 0 {
		return domain.Product{}, fmt.Errorf("non-positive weight %v", sp.WeightKg)
	}
	d := sp.Dimensions
	if d.Length <= 0 || d.Width <= 0 || d.Height <= 0 {
		return domain.Product{}, fmt.Errorf("non-positive dimensions %+v", d)
	}

	return domain.Product{
		ProductID:   sp.ProductID,
		Name:        sp.Name,
		Price:       sp.Price,
		Description: sp.Description,
		Images:      sp.Images,
		Categories:  sp.Categories,
		WeightKg:    sp.WeightKg,
		Dimensions: domain.Dimensions{
			LengthCm: d.Length,
			WidthCm:  d.Width,
			HeightCm: d.Height,
		},
		Options: sp.Options,
	}, nil
}

// List returns the catalog products in seed order.
func (c Catalog) List(ctx context.Context) ([]domain.Product, error) {
	const op = "Catalog.List"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return append([]domain.Product(nil), c.products...), nil
}

// FindByID returns the product with the given identifier or
// [domain.ErrProductNotFound].
func (c Catalog) FindByID(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "Catalog.FindByID"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	i, ok := c.byID[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf(
			"%s: %q: %w", op, productID, domain.ErrProductNotFound,
		)
	}
	return c.products[i], nil
}

// Len reports the number of seeded products.
func (c Catalog) Len() int {
	return len(c.products)
}

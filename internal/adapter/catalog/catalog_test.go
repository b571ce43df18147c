package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/animatoon/storefront/internal/adapter/catalog"
	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	t.Run("SeedFile", func(t *testing.T) {
		c := loadTestCatalog(t)
		assert.Equal(t, 5, c.Len())
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := catalog.Load(filepath.Join("testdata", "missing.json"))
		require.Error(t, err)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		seed := `[
			{"product_id": "p1", "name": "A", "price": 1, "images": ["a.jpg"],
			 "weight_kg": 0.5, "dimensions_cm": {"length": 10, "width": 10, "height": 10}},
			{"product_id": "p1", "name": "B", "price": 2, "images": ["b.jpg"],
			 "weight_kg": 0.5, "dimensions_cm": {"length": 10, "width": 10, "height": 10}}
		]`
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

		_, err := catalog.Load(path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "duplicate product id")
	})

	t.Run("InvalidWeight", func(t *testing.T) {
		seed := `[
			{"product_id": "p1", "name": "A", "price": 1, "images": ["a.jpg"],
			 "weight_kg": 0, "dimensions_cm": {"length": 10, "width": 10, "height": 10}}
		]`
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

		_, err := catalog.Load(path)
		require.Error(t, err)
	})
}

func TestFindByID(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		c := loadTestCatalog(t)

		p, err := c.FindByID(t.Context(), "luminaria-acdc")
		require.NoError(t, err)

		assert.Equal(t, "Luminária ACDC", p.Name)
		assert.InDelta(t, 149.90, p.Price, 1e-9)
		assert.InDelta(t, 0.5, p.WeightKg, 1e-9)
		assert.NotEmpty(t, p.Images)
	})

	t.Run("Unknown", func(t *testing.T) {
		c := loadTestCatalog(t)

		_, err := c.FindByID(t.Context(), "nonexistent-id")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("WithOptions", func(t *testing.T) {
		c := loadTestCatalog(t)

		p, err := c.FindByID(t.Context(), "chaveiros-emotes")
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"Feliz", "Triste", "Apaixonado", "Surpreso"},
			p.Options["modelos"],
		)
	})
}

func TestList(t *testing.T) {
	c := loadTestCatalog(t)

	ps, err := c.List(t.Context())
	require.NoError(t, err)
	require.Len(t, ps, 5)

	// seed order preserved
	assert.Equal(t, "luminaria-acdc", ps[0].ProductID)
	assert.Equal(t, "luminaria-lua", ps[4].ProductID)
}

package payment_test

import (
	"strings"
	"testing"

	"github.com/animatoon/storefront/internal/adapter/payment"
	"github.com/animatoon/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReference(t *testing.T) {
	t.Run("PrefixedAndUnique", func(t *testing.T) {
		p := payment.NewReferenceProvider("TEST")
		summary := domain.OrderSummary{ProductID: "luminaria-acdc", Total: 185.40}

		seen := make(map[string]struct{})
		for range 100 {
			ref, err := p.CreateReference(t.Context(), summary)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(ref, "TEST-"))

			_, dup := seen[ref]
			require.False(t, dup, "reference reused: %s", ref)
			seen[ref] = struct{}{}
		}
	})

	t.Run("DefaultPrefix", func(t *testing.T) {
		p := payment.NewReferenceProvider("")
		ref, err := p.CreateReference(t.Context(), domain.OrderSummary{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "TEST-"))
	})
}

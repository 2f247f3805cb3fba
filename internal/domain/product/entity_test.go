//go:build unit

package product_test

import (
	"testing"

	"school-rewards/internal/domain/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("valid product starts active", func(t *testing.T) {
		p, err := product.NewProduct("Pencil Set", "A set of pencils", 2, 10)
		require.NoError(t, err)

		assert.Equal(t, "Pencil Set", p.Name())
		assert.Equal(t, 2, p.Price())
		assert.Equal(t, 10, p.Stock())
		assert.Equal(t, 0, p.Purchases())
		assert.True(t, p.IsActive())
		assert.NotEqual(t, uuid.Nil, p.ID())
	})

	t.Run("name and description are trimmed", func(t *testing.T) {
		p, err := product.NewProduct("  Eraser  ", "  soft  ", 1, 0)
		require.NoError(t, err)
		assert.Equal(t, "Eraser", p.Name())
		assert.Equal(t, "soft", p.Description())
	})

	cases := []struct {
		name         string
		productName  string
		price, stock int
		errIs        error
	}{
		{"empty name", "", 1, 0, product.ErrEmptyName},
		{"whitespace name", "  ", 1, 0, product.ErrEmptyName},
		{"zero price", "Pencil", 0, 0, product.ErrInvalidPrice},
		{"negative price", "Pencil", -1, 0, product.ErrInvalidPrice},
		{"negative stock", "Pencil", 1, -1, product.ErrNegativeStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := product.NewProduct(tc.productName, "", tc.price, tc.stock)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestAvailability(t *testing.T) {
	t.Run("in-stock active product is available", func(t *testing.T) {
		p, err := product.NewProduct("Pencil", "", 1, 3)
		require.NoError(t, err)

		assert.True(t, p.Available())
		assert.True(t, p.HasStock(3))
		assert.False(t, p.HasStock(4))
	})

	t.Run("zero stock is unavailable", func(t *testing.T) {
		p, err := product.NewProduct("Pencil", "", 1, 0)
		require.NoError(t, err)

		assert.False(t, p.Available())
		assert.True(t, p.HasStock(0))
	})
}

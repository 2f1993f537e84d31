package catalog_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "Success - Plain", input: "Php102", expected: "102"},
		{name: "Success - Thousands separator", input: "Php1,250", expected: "1250"},
		{name: "Success - Multiple separators", input: "Php1,250,000", expected: "1250000"},
		{name: "Success - Decimals", input: "Php99.50", expected: "99.5"},
		{name: "Success - No prefix", input: "42", expected: "42"},
		{name: "Failure - Empty", input: "Php", wantErr: true},
		{name: "Failure - Garbage", input: "PhpABC", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			got, err := catalog.ParsePrice(tc.input)

			// Assert
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, catalog.ErrInvalidPrice)
				assert.True(t, got.IsZero())

				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
		})
	}
}

func TestCatalog(t *testing.T) {
	c := catalog.New([]models.Product{
		{ID: "1", Name: "Pancit Canton", Category: "Snacks", Price: "Php102"},
		{ID: "2", Name: "Soft drinks", Category: "Beverages", Price: "Php89"},
		{ID: "x", Name: "Broken", Category: "Snacks", Price: "free"},
	})

	t.Run("Success - Lookup", func(t *testing.T) {
		p, ok := c.Lookup("2")
		require.True(t, ok)
		assert.Equal(t, "Soft drinks", p.Name)
	})

	t.Run("Failure - Lookup unknown", func(t *testing.T) {
		_, ok := c.Lookup("404")
		assert.False(t, ok)
	})

	t.Run("Success - List by category", func(t *testing.T) {
		snacks := c.List("snacks")
		require.Len(t, snacks, 2)
		assert.Equal(t, "1", snacks[0].ID)
		assert.Len(t, c.List(""), 3)
	})
}

func TestDefaultCatalog(t *testing.T) {
	c := catalog.Default()

	assert.Len(t, c.List(""), 13)
	assert.Len(t, c.List("Starter Pack"), 6)

	canton, ok := c.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, "Php102", canton.Price)
	assert.Contains(t, canton.Options, "Chilimansi")

	for _, p := range c.List("") {
		_, err := catalog.ParsePrice(p.Price)
		assert.NoError(t, err, "product %s has an unparsable price", p.ID)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Php306.00", catalog.FormatPrice(decimal.NewFromInt(306)))
}

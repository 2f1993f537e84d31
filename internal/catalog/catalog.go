// Package catalog serves the fixed product list of the store.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
)

const pricePrefix = "Php"

var ErrInvalidPrice = errors.New("invalid price")

type Catalog struct {
	products []models.Product
	byID     map[string]int
}

// New indexes products by ID. A later duplicate ID replaces the earlier entry
// in lookups but keeps the listing position of the first.
func New(products []models.Product) *Catalog {
	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	for _, p := range products {
		if idx, ok := c.byID[p.ID]; ok {
			c.products[idx] = p
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c
}

func (c *Catalog) Lookup(id string) (models.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}

	return c.products[idx], true
}

// List returns the products in listing order, optionally restricted to one
// category. An empty category returns everything.
func (c *Catalog) List(category string) []models.Product {
	out := make([]models.Product, 0, len(c.products))

	for _, p := range c.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}

	return out
}

// ParsePrice turns a display price such as "Php1,250" into a decimal. The
// currency prefix and every thousands separator are removed before parsing.
func ParsePrice(price string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(price)
	raw = strings.TrimPrefix(raw, pricePrefix)
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, price)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %w", ErrInvalidPrice, price, err)
	}

	return d, nil
}

// FormatPrice renders an amount in the catalog's display form.
func FormatPrice(d decimal.Decimal) string {
	return pricePrefix + d.StringFixed(2)
}

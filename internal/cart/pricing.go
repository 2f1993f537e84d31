package cart

import (
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// UnitPrice resolves the numeric price of productID. It reports false for an
// unknown product or an unparsable price.
func UnitPrice(products Catalog, productID string) (decimal.Decimal, bool) {
	p, ok := products.Lookup(productID)
	if !ok {
		return decimal.Zero, false
	}

	price, err := catalog.ParsePrice(p.Price)
	if err != nil {
		return decimal.Zero, false
	}

	return price, true
}

package integration

import "github.com/shopspring/decimal"

// Product is the canonical product record sourced from the ERP.
type Product struct {
	// ID is the ERP-internal product identifier
	ID int64
	// Name is the product display name
	Name string
	// SKU is the unique external identifier shared with the storefront.
	// It may be empty; a product without a SKU cannot be synchronized.
	SKU string
	// RetailPrice is the regular selling price
	RetailPrice decimal.Decimal
	// PromoPrice is the promotional price. Zero when the ERP does not
	// carry the field for this product.
	PromoPrice decimal.Decimal
	// Quantity is the available stock quantity
	Quantity decimal.Decimal
	// Type is the ERP category tag (informational only)
	Type string
}

// HasSpecialPrice reports whether a special-price update should be pushed to
// the storefront. The promotional price must be set and strictly below the
// retail price; the comparison is the given sync policy, not a derived rule.
func (p *Product) HasSpecialPrice() bool {
	return p.PromoPrice.IsPositive() && p.PromoPrice.LessThan(p.RetailPrice)
}

// InStock reports whether the product has available stock.
func (p *Product) InStock() bool {
	return p.Quantity.IsPositive()
}

// StorefrontProduct is the storefront's view of a product. The bridge only
// updates existing storefront products, so this is primarily an existence
// check target.
type StorefrontProduct struct {
	// ID is the storefront-internal product identifier
	ID int64
	// SKU is the shared external identifier
	SKU string
	// Name is the product display name on the storefront
	Name string
	// Price is the current storefront price
	Price decimal.Decimal
}

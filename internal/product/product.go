package product

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product maps to the `products` table. Monetary columns are numeric(10,2)
// and are carried as fixed-point decimals, never floats.
type Product struct {
	ID            int              `json:"productId"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	StockQuantity int              `json:"stockQuantity"`
	IsActive      bool             `json:"isActive"`
	ImageURL      *string          `json:"imageUrl,omitempty"`
	CategoryID    *int             `json:"categoryId,omitempty"`
	CreatedAt     string           `json:"createdAt,omitempty"`
	UpdatedAt     string           `json:"updatedAt,omitempty"`
}

// MarshalJSON renders the monetary fields with a fixed two-decimal scale.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	shadow := struct {
		alias
		Price     string  `json:"price"`
		SalePrice *string `json:"salePrice,omitempty"`
	}{alias: alias(p), Price: p.Price.StringFixed(2)}
	if p.SalePrice != nil {
		s := p.SalePrice.StringFixed(2)
		shadow.SalePrice = &s
	}
	return json.Marshal(shadow)
}

// EffectivePrice is the sale price when one is set, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Filter narrows and orders product listings.
type Filter struct {
	CategoryID *int
	ActiveOnly bool
	Search     string
	// Sort is one of "", "price", "price_desc", "name", "newest".
	Sort string
}

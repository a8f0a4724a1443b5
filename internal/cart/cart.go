package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Line is a raw cart row joined with the live product data it points at.
type Line struct {
	ItemID       int
	ProductID    int
	ProductName  string
	ProductImage *string
	Price        decimal.Decimal
	SalePrice    *decimal.Decimal
	Stock        int
	Quantity     int
}

// UnitPrice is the sale price when one is set, the list price otherwise.
func (l Line) UnitPrice() decimal.Decimal {
	if l.SalePrice != nil {
		return *l.SalePrice
	}
	return l.Price
}

// Item is the API shape of a cart line, with its computed line total.
type Item struct {
	ItemID    int             `json:"itemId"`
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  *string         `json:"imageUrl,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Stock     int             `json:"stock"`
}

// Cart is the API response for the whole cart.
type Cart struct {
	Items    []Item          `json:"items"`
	SubTotal decimal.Decimal `json:"subTotal"`
}

// MarshalJSON renders the monetary fields with a fixed two-decimal scale.
func (i Item) MarshalJSON() ([]byte, error) {
	type alias Item
	return json.Marshal(struct {
		alias
		UnitPrice string `json:"unitPrice"`
		LineTotal string `json:"lineTotal"`
	}{
		alias:     alias(i),
		UnitPrice: i.UnitPrice.StringFixed(2),
		LineTotal: i.LineTotal.StringFixed(2),
	})
}

func (c Cart) MarshalJSON() ([]byte, error) {
	type alias Cart
	return json.Marshal(struct {
		alias
		SubTotal string `json:"subTotal"`
	}{alias: alias(c), SubTotal: c.SubTotal.StringFixed(2)})
}

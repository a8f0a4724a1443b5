package product

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductJSONMoneyScale(t *testing.T) {
	sale := decimal.RequireFromString("14.90")
	p := Product{
		ID:        1,
		Name:      "Keyboard",
		Price:     decimal.NewFromInt(20),
		SalePrice: &sale,
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, `"price":"20.00"`) {
		t.Errorf("product JSON %s does not carry a two-decimal price", body)
	}
	if !strings.Contains(body, `"salePrice":"14.90"`) {
		t.Errorf("product JSON %s does not carry a two-decimal sale price", body)
	}
}

func TestProductJSONOmitsMissingSalePrice(t *testing.T) {
	p := Product{ID: 1, Name: "Keyboard", Price: decimal.NewFromInt(20)}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "salePrice") {
		t.Errorf("product JSON %s includes salePrice for a product without one", raw)
	}
}

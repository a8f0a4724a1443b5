package cart

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartJSONMoneyScale(t *testing.T) {
	c := Cart{
		Items: []Item{{
			ItemID:    1,
			ProductID: 2,
			Name:      "Keyboard",
			UnitPrice: decimal.RequireFromString("12.50"),
			Quantity:  2,
			LineTotal: decimal.NewFromInt(25),
			Stock:     5,
		}},
		SubTotal: decimal.NewFromInt(25),
	}

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(raw)
	for _, want := range []string{
		`"unitPrice":"12.50"`,
		`"lineTotal":"25.00"`,
		`"subTotal":"25.00"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("cart JSON %s is missing %s", body, want)
		}
	}
}

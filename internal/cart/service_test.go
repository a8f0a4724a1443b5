package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/folio-shop-backend/internal/product"
)

func newService(seed []product.Product) (*Service, *InMemoryRepository, *product.InMemoryRepository) {
	products := product.NewInMemoryRepository(seed)
	repo := NewInMemoryRepository(products)
	return NewService(repo), repo, products
}

func active(id int, price string, stock int) product.Product {
	return product.Product{ID: id, Name: "P", Price: decimal.RequireFromString(price), StockQuantity: stock, IsActive: true}
}

func TestAddComputesTotals(t *testing.T) {
	svc, _, _ := newService([]product.Product{active(1, "19.90", 10)})

	got, err := svc.Add(5, 1, 3)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	if got.Items[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", got.Items[0].Quantity)
	}
	want := decimal.RequireFromString("59.70")
	if !got.Items[0].LineTotal.Equal(want) {
		t.Fatalf("line total = %s, want 59.70", got.Items[0].LineTotal)
	}
	if !got.SubTotal.Equal(want) {
		t.Fatalf("subtotal = %s, want 59.70", got.SubTotal)
	}
}

func TestAddMergesExistingLine(t *testing.T) {
	svc, _, _ := newService([]product.Product{active(1, "10.00", 10)})

	if _, err := svc.Add(5, 1, 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	got, err := svc.Add(5, 1, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(got.Items))
	}
	if got.Items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want merged 5", got.Items[0].Quantity)
	}
}

func TestAddCapsAtStock(t *testing.T) {
	svc, _, _ := newService([]product.Product{active(1, "10.00", 4)})

	got, err := svc.Add(5, 1, 9)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got.Items[0].Quantity != 4 {
		t.Fatalf("quantity = %d, want capped at stock 4", got.Items[0].Quantity)
	}
}

func TestAddOutOfStock(t *testing.T) {
	svc, _, _ := newService([]product.Product{active(1, "10.00", 0)})

	if _, err := svc.Add(5, 1, 1); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
}

func TestAddInactiveProduct(t *testing.T) {
	p := active(1, "10.00", 5)
	p.IsActive = false
	svc, _, _ := newService([]product.Product{p})

	if _, err := svc.Add(5, 1, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for inactive product, got %v", err)
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := newService([]product.Product{active(1, "10.00", 5)})

	if _, err := svc.Add(5, 1, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.Add(5, 1, -2); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _, _ := newService([]product.Product{active(1, "10.00", 5)})

	got, err := svc.Add(5, 1, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := got.Items[0].ItemID

	got, err = svc.UpdateQuantity(5, itemID, 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("line should be removed, %d left", len(got.Items))
	}
}

func TestUpdateQuantityCapsAtStock(t *testing.T) {
	svc, _, _ := newService([]product.Product{active(1, "10.00", 3)})

	got, err := svc.Add(5, 1, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err = svc.UpdateQuantity(5, got.Items[0].ItemID, 10)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Items[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want capped at 3", got.Items[0].Quantity)
	}
}

func TestUpdateQuantityRemovesWhenStockGone(t *testing.T) {
	svc, _, products := newService([]product.Product{active(1, "10.00", 3)})

	got, err := svc.Add(5, 1, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := got.Items[0].ItemID

	// stock drains to zero after the line was added
	p, _ := products.GetByID(1)
	p.StockQuantity = 0
	if _, err := products.Update(1, p); err != nil {
		t.Fatalf("drain stock: %v", err)
	}

	got, err = svc.UpdateQuantity(5, itemID, 2)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("line for drained product should be removed, %d left", len(got.Items))
	}
}

func TestUpdateForeignLineRejected(t *testing.T) {
	svc, _, _ := newService([]product.Product{active(1, "10.00", 5)})

	got, err := svc.Add(5, 1, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.UpdateQuantity(6, got.Items[0].ItemID, 2); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound for foreign line, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	svc, _, _ := newService([]product.Product{active(1, "10.00", 5), active(2, "5.00", 5)})

	got, err := svc.Add(5, 1, 1)
	if err != nil {
		t.Fatalf("add 1: %v", err)
	}
	if _, err := svc.Add(5, 2, 1); err != nil {
		t.Fatalf("add 2: %v", err)
	}

	after, err := svc.Remove(5, got.Items[0].ItemID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(after.Items) != 1 {
		t.Fatalf("expected 1 item after remove, got %d", len(after.Items))
	}

	if err := svc.Clear(5); err != nil {
		t.Fatalf("clear: %v", err)
	}
	after, err = svc.Get(5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(after.Items) != 0 {
		t.Fatalf("cart should be empty after clear, has %d", len(after.Items))
	}
}

package order

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/folio-shop-backend/internal/cart"
	"github.com/wichananm65/folio-shop-backend/internal/product"
	"github.com/wichananm65/folio-shop-backend/internal/user"
)

type fixture struct {
	products *product.InMemoryRepository
	carts    *cart.InMemoryRepository
	repo     *InMemoryRepository
	svc      *Service
}

func newFixture(seed []product.Product) *fixture {
	products := product.NewInMemoryRepository(seed)
	carts := cart.NewInMemoryRepository(products)
	repo := NewInMemoryRepository(carts, products)
	return &fixture{products: products, carts: carts, repo: repo, svc: NewService(repo)}
}

func (f *fixture) addToCart(t *testing.T, userID, productID, qty int) {
	t.Helper()
	if _, err := f.carts.SaveLine(userID, productID, qty); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
}

func (f *fixture) stockOf(t *testing.T, productID int) int {
	t.Helper()
	p, err := f.products.GetByID(productID)
	if err != nil {
		t.Fatalf("product %d: %v", productID, err)
	}
	return p.StockQuantity
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProduct(id int, price string, stock int) product.Product {
	return product.Product{ID: id, Name: "Product " + string(rune('A'+id-1)), Price: money(price), StockQuantity: stock, IsActive: true}
}

var checkoutInput = CheckoutInput{ShippingName: "Anan", ShippingAddress: "1 Main Road, Bangkok"}

func TestCheckoutTotalsStockAndCart(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	f.addToCart(t, 7, 1, 2)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if len(ord.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(ord.Items))
	}
	it := ord.Items[0]
	if it.ProductID != 1 || it.Quantity != 2 || !it.UnitPrice.Equal(money("50.00")) || !it.LineTotal.Equal(money("100.00")) {
		t.Fatalf("unexpected item snapshot: %+v", it)
	}

	if !ord.SubTotal.Equal(money("100.00")) {
		t.Fatalf("subtotal = %s, want 100.00", ord.SubTotal)
	}
	if !ord.Tax.Equal(money("10.00")) {
		t.Fatalf("tax = %s, want 10.00", ord.Tax)
	}
	if !ord.ShippingCost.Equal(decimal.Zero) {
		t.Fatalf("shipping = %s, want 0 at the free-shipping threshold", ord.ShippingCost)
	}
	if !ord.TotalAmount.Equal(money("110.00")) {
		t.Fatalf("total = %s, want 110.00", ord.TotalAmount)
	}
	if !ord.TotalAmount.Equal(ord.SubTotal.Add(ord.Tax).Add(ord.ShippingCost)) {
		t.Fatalf("total %s does not equal subtotal+tax+shipping", ord.TotalAmount)
	}

	if ord.Status != StatusPending || ord.PaymentStatus != PaymentUnpaid {
		t.Fatalf("new order states = %s/%s, want pending/unpaid", ord.Status, ord.PaymentStatus)
	}
	if !strings.HasPrefix(ord.OrderNumber, "ORD-") {
		t.Fatalf("order number %q missing prefix", ord.OrderNumber)
	}

	if got := f.stockOf(t, 1); got != 3 {
		t.Fatalf("stock after checkout = %d, want 3", got)
	}
	lines, _ := f.carts.Lines(7)
	if len(lines) != 0 {
		t.Fatalf("cart should be empty after checkout, has %d lines", len(lines))
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})

	_, err := f.svc.Checkout(7, checkoutInput)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "25.00", 0)})
	f.addToCart(t, 7, 1, 2)

	_, err := f.svc.Checkout(7, checkoutInput)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %T", err)
	}

	if got := f.stockOf(t, 1); got != 0 {
		t.Fatalf("stock changed on failed checkout: %d", got)
	}
	lines, _ := f.carts.Lines(7)
	if len(lines) != 1 {
		t.Fatalf("cart changed on failed checkout: %d lines", len(lines))
	}
}

func TestCheckoutAllOrNothing(t *testing.T) {
	f := newFixture([]product.Product{
		seedProduct(1, "10.00", 5),
		seedProduct(2, "20.00", 1),
	})
	f.addToCart(t, 7, 1, 2)
	f.addToCart(t, 7, 2, 3)

	_, err := f.svc.Checkout(7, checkoutInput)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// neither product may have been decremented
	if got := f.stockOf(t, 1); got != 5 {
		t.Fatalf("product 1 stock = %d, want 5", got)
	}
	if got := f.stockOf(t, 2); got != 1 {
		t.Fatalf("product 2 stock = %d, want 1", got)
	}
	lines, _ := f.carts.Lines(7)
	if len(lines) != 2 {
		t.Fatalf("cart should be untouched, has %d lines", len(lines))
	}
}

func TestCheckoutFlatShippingBelowThreshold(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "30.00", 5)})
	f.addToCart(t, 7, 1, 1)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !ord.ShippingCost.Equal(money("10")) {
		t.Fatalf("shipping = %s, want flat fee 10", ord.ShippingCost)
	}
	if !ord.TotalAmount.Equal(money("43.00")) {
		t.Fatalf("total = %s, want 43.00", ord.TotalAmount)
	}
}

func TestCheckoutShippingOverride(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "30.00", 5)})
	f.addToCart(t, 7, 1, 1)

	override := money("5.50")
	in := checkoutInput
	in.ShippingOverride = &override

	ord, err := f.svc.Checkout(7, in)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !ord.ShippingCost.Equal(override) {
		t.Fatalf("shipping = %s, want override 5.50", ord.ShippingCost)
	}
	if !ord.TotalAmount.Equal(money("38.50")) {
		t.Fatalf("total = %s, want 38.50", ord.TotalAmount)
	}
}

func TestCheckoutTaxRoundsHalfUp(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "10.05", 5)})
	f.addToCart(t, 7, 1, 1)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	// 10% of 10.05 is 1.005, carried to 1.01
	if !ord.Tax.Equal(money("1.01")) {
		t.Fatalf("tax = %s, want 1.01", ord.Tax)
	}
}

func TestCheckoutUsesSalePrice(t *testing.T) {
	sale := money("40.00")
	p := seedProduct(1, "50.00", 5)
	p.SalePrice = &sale
	f := newFixture([]product.Product{p})
	f.addToCart(t, 7, 1, 1)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !ord.Items[0].UnitPrice.Equal(sale) {
		t.Fatalf("unit price = %s, want sale price 40.00", ord.Items[0].UnitPrice)
	}
}

func TestCheckoutOrderNumbersDistinct(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "10.00", 10)})
	f.addToCart(t, 1, 1, 1)
	f.addToCart(t, 2, 1, 1)

	first, err := f.svc.Checkout(1, checkoutInput)
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	second, err := f.svc.Checkout(2, checkoutInput)
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if first.OrderNumber == second.OrderNumber {
		t.Fatalf("order numbers must be distinct, both %q", first.OrderNumber)
	}
}

func TestCancelRestoresStock(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	f.addToCart(t, 7, 1, 2)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got := f.stockOf(t, 1); got != 3 {
		t.Fatalf("stock after checkout = %d, want 3", got)
	}

	cancelled, err := f.svc.Cancel(7, user.RoleUser, ord.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}
	if got := f.stockOf(t, 1); got != 5 {
		t.Fatalf("stock after cancel = %d, want 5", got)
	}
}

func TestCancelTwiceRejected(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	f.addToCart(t, 7, 1, 2)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if _, err := f.svc.Cancel(7, user.RoleUser, ord.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err = f.svc.Cancel(7, user.RoleAdmin, ord.ID)
	if !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	// stock must not be restored a second time
	if got := f.stockOf(t, 1); got != 5 {
		t.Fatalf("stock after double cancel = %d, want 5", got)
	}
}

func TestCancelOwnershipAndState(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 10)})
	f.addToCart(t, 7, 1, 1)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if _, err := f.svc.Cancel(8, user.RoleUser, ord.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	if _, err := f.svc.SetStatus(ord.ID, StatusProcessing); err != nil {
		t.Fatalf("set processing: %v", err)
	}
	if _, err := f.svc.Cancel(7, user.RoleUser, ord.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("owner may only cancel pending orders, got %v", err)
	}

	// an admin may still cancel a processing order
	if _, err := f.svc.Cancel(99, user.RoleAdmin, ord.ID); err != nil {
		t.Fatalf("admin cancel of processing order: %v", err)
	}
}

func TestSetStatusTransitions(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 10)})
	f.addToCart(t, 7, 1, 1)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if _, err := f.svc.SetStatus(ord.ID, StatusDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending->delivered must be rejected, got %v", err)
	}

	ord, err = f.svc.SetStatus(ord.ID, StatusProcessing)
	if err != nil {
		t.Fatalf("pending->processing: %v", err)
	}

	ord, err = f.svc.SetStatus(ord.ID, StatusShipped)
	if err != nil {
		t.Fatalf("processing->shipped: %v", err)
	}
	if ord.ShippedAt == nil {
		t.Fatal("shippedAt not stamped")
	}

	ord, err = f.svc.SetStatus(ord.ID, StatusDelivered)
	if err != nil {
		t.Fatalf("shipped->delivered: %v", err)
	}
	if ord.DeliveredAt == nil {
		t.Fatal("deliveredAt not stamped")
	}

	if _, err := f.svc.SetStatus(ord.ID, StatusProcessing); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("delivered is terminal, got %v", err)
	}
	if _, err := f.svc.Cancel(99, user.RoleAdmin, ord.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelling a delivered order must be rejected, got %v", err)
	}
}

func TestSetPaymentStatusTransitions(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 10)})
	f.addToCart(t, 7, 1, 1)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if _, err := f.svc.SetPaymentStatus(ord.ID, PaymentRefunded); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("unpaid->refunded must be rejected, got %v", err)
	}

	ord, err = f.svc.SetPaymentStatus(ord.ID, PaymentPaid)
	if err != nil {
		t.Fatalf("unpaid->paid: %v", err)
	}
	if ord.PaymentStatus != PaymentPaid {
		t.Fatalf("payment status = %s, want paid", ord.PaymentStatus)
	}

	ord, err = f.svc.SetPaymentStatus(ord.ID, PaymentRefunded)
	if err != nil {
		t.Fatalf("paid->refunded: %v", err)
	}
	if ord.PaymentStatus != PaymentRefunded {
		t.Fatalf("payment status = %s, want refunded", ord.PaymentStatus)
	}
}

func TestMarkPaymentResult(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 10)})
	f.addToCart(t, 7, 1, 1)

	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if err := f.svc.AttachPaymentIntent(ord.ID, "pi_123"); err != nil {
		t.Fatalf("attach intent: %v", err)
	}

	// failure event leaves the order unpaid
	got, err := f.svc.MarkPaymentResult("pi_123", false)
	if err != nil {
		t.Fatalf("failed event: %v", err)
	}
	if got.PaymentStatus != PaymentUnpaid {
		t.Fatalf("payment status after failure = %s, want unpaid", got.PaymentStatus)
	}

	got, err = f.svc.MarkPaymentResult("pi_123", true)
	if err != nil {
		t.Fatalf("success event: %v", err)
	}
	if got.PaymentStatus != PaymentPaid {
		t.Fatalf("payment status = %s, want paid", got.PaymentStatus)
	}

	// a duplicate delivery of the same event is a no-op
	got, err = f.svc.MarkPaymentResult("pi_123", true)
	if err != nil {
		t.Fatalf("duplicate event: %v", err)
	}
	if got.PaymentStatus != PaymentPaid {
		t.Fatalf("payment status after duplicate = %s, want paid", got.PaymentStatus)
	}

	if _, err := f.svc.MarkPaymentResult("pi_unknown", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown intent must return ErrNotFound, got %v", err)
	}
}

func TestGetAndListVisibility(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 10)})
	f.addToCart(t, 7, 1, 1)
	f.addToCart(t, 8, 1, 1)

	mine, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout 7: %v", err)
	}
	if _, err := f.svc.Checkout(8, checkoutInput); err != nil {
		t.Fatalf("checkout 8: %v", err)
	}

	if _, err := f.svc.Get(8, user.RoleUser, mine.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger read must be forbidden, got %v", err)
	}
	if _, err := f.svc.Get(8, user.RoleAdmin, mine.ID); err != nil {
		t.Fatalf("admin read: %v", err)
	}

	own, err := f.svc.List(7, user.RoleUser)
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	if len(own) != 1 || own[0].UserID != 7 {
		t.Fatalf("user list leaked foreign orders: %+v", own)
	}

	all, err := f.svc.List(7, user.RoleAdmin)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin list = %d orders, want 2", len(all))
	}
}

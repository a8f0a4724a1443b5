package order

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/folio-shop-backend/internal/product"
	"github.com/wichananm65/folio-shop-backend/internal/user"
)

// asUser injects the claims the JWT middleware would have parsed.
func asUser(id int, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": float64(id), "role": role}})
		return c.Next()
	}
}

func setupApp(f *fixture, userID int, role string) *fiber.App {
	app := fiber.New()
	app.Use(asUser(userID, role))
	NewHandler(f.svc).RegisterProtectedRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, map[string]json.RawMessage) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	out := map[string]json.RawMessage{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

var checkoutBody = map[string]string{"shippingName": "Anan", "shippingAddress": "1 Main Road"}

func TestCheckoutEndpoint(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	f.addToCart(t, 7, 1, 2)
	app := setupApp(f, 7, user.RoleUser)

	status, body := doJSON(t, app, "POST", "/api/orders", checkoutBody)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}

	var total string
	if err := json.Unmarshal(body["totalAmount"], &total); err != nil {
		t.Fatalf("totalAmount: %v", err)
	}
	if total != "110.00" {
		t.Fatalf("totalAmount = %q, want 110.00", total)
	}
}

func TestCheckoutEndpointValidation(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	f.addToCart(t, 7, 1, 2)
	app := setupApp(f, 7, user.RoleUser)

	status, _ := doJSON(t, app, "POST", "/api/orders", map[string]string{"shippingName": "Anan"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("missing address: status = %d, want 400", status)
	}

	status, _ = doJSON(t, app, "POST", "/api/orders", map[string]any{
		"shippingName": "Anan", "shippingAddress": "1 Main Road", "shippingCost": "-3",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("negative shipping override: status = %d, want 400", status)
	}
}

func TestCheckoutEndpointEmptyCart(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	app := setupApp(f, 7, user.RoleUser)

	status, _ := doJSON(t, app, "POST", "/api/orders", checkoutBody)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestStatusEndpointRequiresAdmin(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	f.addToCart(t, 7, 1, 1)
	ord, err := f.svc.Checkout(7, checkoutInput)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	app := setupApp(f, 7, user.RoleUser)
	status, _ := doJSON(t, app, "PATCH", "/api/orders/1/status", map[string]string{"status": "processing"})
	if status != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403 for non-admin", status)
	}

	admin := setupApp(f, 1, user.RoleAdmin)
	status, body := doJSON(t, admin, "PATCH", "/api/orders/1/status", map[string]string{"status": "processing"})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var got string
	if err := json.Unmarshal(body["status"], &got); err != nil || got != "processing" {
		t.Fatalf("order status = %q (%v), want processing", got, err)
	}
	_ = ord
}

func TestStatusEndpointRejectsUnknownStatus(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	f.addToCart(t, 7, 1, 1)
	if _, err := f.svc.Checkout(7, checkoutInput); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	admin := setupApp(f, 1, user.RoleAdmin)
	status, _ := doJSON(t, admin, "PATCH", "/api/orders/1/status", map[string]string{"status": "teleported"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for unknown status", status)
	}
}

func TestGetOrderForbiddenForStranger(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	f.addToCart(t, 7, 1, 1)
	if _, err := f.svc.Checkout(7, checkoutInput); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	stranger := setupApp(f, 8, user.RoleUser)
	status, _ := doJSON(t, stranger, "GET", "/api/orders/1", nil)
	if status != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", status)
	}

	owner := setupApp(f, 7, user.RoleUser)
	status, _ = doJSON(t, owner, "GET", "/api/orders/1", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 for owner", status)
	}
}

func TestCancelEndpoint(t *testing.T) {
	f := newFixture([]product.Product{seedProduct(1, "50.00", 5)})
	f.addToCart(t, 7, 1, 2)
	if _, err := f.svc.Checkout(7, checkoutInput); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	app := setupApp(f, 7, user.RoleUser)
	status, body := doJSON(t, app, "POST", "/api/orders/1/cancel", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var got string
	if err := json.Unmarshal(body["status"], &got); err != nil || got != "cancelled" {
		t.Fatalf("order status = %q (%v), want cancelled", got, err)
	}

	status, _ = doJSON(t, app, "POST", "/api/orders/1/cancel", nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("second cancel: status = %d, want 400", status)
	}
}

package contact

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/folio-shop-backend/internal/outbox"
)

func setupApp(repo outbox.Repository) *fiber.App {
	app := fiber.New()
	NewHandler(repo, "owner@example.com").RegisterPublicRoutes(app)
	return app
}

func submit(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestSubmitQueuesEmail(t *testing.T) {
	repo := outbox.NewInMemoryRepository()
	app := setupApp(repo)

	payload, _ := json.Marshal(map[string]string{
		"name":    "Anan",
		"email":   "anan@example.com",
		"message": "I liked the <b>keyboard</b> project",
	})
	if code := submit(t, app, string(payload)); code != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", code)
	}

	pending, err := repo.Pending(10)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("queued %d emails, want 1", len(pending))
	}
	email := pending[0]
	if email.Recipient != "owner@example.com" {
		t.Errorf("recipient = %q", email.Recipient)
	}
	if !strings.Contains(email.Subject, "Anan") {
		t.Errorf("subject %q does not name the sender", email.Subject)
	}
	if !strings.Contains(email.Body, "anan@example.com") {
		t.Errorf("body %q does not carry the reply address", email.Body)
	}
}

func TestSubmitEscapesHTML(t *testing.T) {
	repo := outbox.NewInMemoryRepository()
	app := setupApp(repo)

	payload, _ := json.Marshal(map[string]string{
		"name":    "Mallory",
		"email":   "m@example.com",
		"message": `<script>alert("x")</script>`,
	})
	if code := submit(t, app, string(payload)); code != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", code)
	}

	pending, _ := repo.Pending(1)
	if len(pending) != 1 {
		t.Fatal("email not queued")
	}
	if strings.Contains(pending[0].Body, "<script>") {
		t.Errorf("body %q contains unescaped markup", pending[0].Body)
	}
	if !strings.Contains(pending[0].Body, "&lt;script&gt;") {
		t.Errorf("body %q is missing the escaped message", pending[0].Body)
	}
}

func TestSubmitValidation(t *testing.T) {
	repo := outbox.NewInMemoryRepository()
	app := setupApp(repo)

	cases := []struct {
		name string
		body string
	}{
		{"missing message", `{"name":"Anan","email":"anan@example.com"}`},
		{"blank name", `{"name":"   ","email":"anan@example.com","message":"hi"}`},
		{"bad email", `{"name":"Anan","email":"not-an-address","message":"hi"}`},
		{"malformed json", `{"name":`},
	}
	for _, tc := range cases {
		if code := submit(t, app, tc.body); code != fiber.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, code)
		}
	}

	if pending, _ := repo.Pending(10); len(pending) != 0 {
		t.Errorf("rejected submissions queued %d emails", len(pending))
	}
}

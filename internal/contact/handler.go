package contact

import (
	"fmt"
	"html"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/folio-shop-backend/internal/outbox"
)

// Handler accepts contact-form submissions and queues the notification
// email. Delivery is the outbox poller's problem; the submitter always
// gets an immediate answer.
type Handler struct {
	repo outbox.Repository
	to   string
}

func NewHandler(repo outbox.Repository, to string) *Handler {
	return &Handler{repo: repo, to: to}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/contact", h.submit)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(contactRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name, email and message are required"})
	}
	if !strings.Contains(payload.Email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid email"})
	}

	body := fmt.Sprintf("<p><b>From:</b> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(payload.Name), html.EscapeString(payload.Email), html.EscapeString(payload.Message))

	if _, err := h.repo.Enqueue(outbox.Email{
		Recipient: h.to,
		Subject:   "New contact message from " + payload.Name,
		Body:      body,
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "message received"})
}

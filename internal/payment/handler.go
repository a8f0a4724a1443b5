package payment

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/folio-shop-backend/internal/order"
	"github.com/wichananm65/folio-shop-backend/internal/user"
)

// IntentCreator is the gateway surface the handler needs.
type IntentCreator interface {
	CreateIntent(amountMinor int64, currency, reference string) (Intent, error)
}

type Handler struct {
	orders *order.Service
	client IntentCreator
}

func NewHandler(orders *order.Service, client IntentCreator) *Handler {
	return &Handler{orders: orders, client: client}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/orders/:id<int>/pay", h.payOrder)
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/payments/webhook", h.webhook)
}

// payOrder creates a gateway intent for the order total and stores the
// intent id so webhook events can find the order.
func (h *Handler) payOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	role, _ := user.GetRoleFromCtx(c)

	ord, err := h.orders.Get(userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case errors.Is(err, order.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	if ord.PaymentStatus != order.PaymentUnpaid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "order is not awaiting payment"})
	}

	amountMinor := ord.TotalAmount.Mul(decimal.NewFromInt(100)).IntPart()
	intent, err := h.client.CreateIntent(amountMinor, "usd", ord.OrderNumber)
	if err != nil {
		log.Printf("payment: create intent failed for order %d: %v", ord.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "payment gateway unavailable"})
	}

	if err := h.orders.AttachPaymentIntent(ord.ID, intent.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"intentId": intent.ID, "clientSecret": intent.ClientSecret})
}

type webhookEvent struct {
	IntentID string `json:"intentId"`
	Status   string `json:"status"`
}

// webhook receives success/failure events keyed by intent id.
func (h *Handler) webhook(c *fiber.Ctx) error {
	event := new(webhookEvent)
	if err := c.BodyParser(event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if event.IntentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "intentId is required"})
	}

	succeeded := event.Status == "succeeded"
	if _, err := h.orders.MarkPaymentResult(event.IntentID, succeeded); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "unknown intent"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"received": true})
}

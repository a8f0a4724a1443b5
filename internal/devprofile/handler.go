package devprofile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	client *Client
}

func NewHandler(c *Client) *Handler {
	return &Handler{client: c}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/github/profile", h.getProfile)
	app.Get("/api/github/repos", h.getRepos)
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	profile, err := h.client.Profile(c.Context())
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "developer platform unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(profile)
}

func (h *Handler) getRepos(c *fiber.Ctx) error {
	repos, err := h.client.Repos(c.Context())
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "developer platform unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(repos)
}

package user

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenConfig carries the signing parameters for issued bearer tokens.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// IssueToken signs an HS256 token for the user. The payload carries the
// user id, display name, email, role and a unique jti alongside the
// registered issuer/audience/expiry claims.
func IssueToken(u User, cfg TokenConfig) (string, error) {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 72 * time.Hour
	}

	claims := jwt.MapClaims{
		"user_id": u.ID,
		"name":    u.Username,
		"email":   u.Email,
		"role":    u.Role,
		"jti":     uuid.NewString(),
		"iss":     cfg.Issuer,
		"aud":     cfg.Audience,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ClaimsCheck runs after the JWT signature/expiry middleware and rejects
// tokens whose issuer or audience do not match. The response is the same
// generic 401 regardless of which check failed. Requests the JWT
// middleware let through without a token pass untouched; handlers that
// need an identity reject those themselves.
func ClaimsCheck(issuer, audience string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("user") == nil {
			return c.Next()
		}
		claims, err := claimsFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		if !claims.VerifyIssuer(issuer, true) || !claims.VerifyAudience(audience, true) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		return c.Next()
	}
}

// RequireAdmin blocks the request unless the token's role claim is admin.
func RequireAdmin(c *fiber.Ctx) error {
	role, err := GetRoleFromCtx(c)
	if err != nil || role != RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
	}
	return c.Next()
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	u := c.Locals("user")
	if u == nil {
		return nil, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// GetUserIDFromCtx extracts the user_id claim placed by the JWT middleware.
func GetUserIDFromCtx(c *fiber.Ctx) (int, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return 0, err
	}
	raw, ok := claims["user_id"]
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	}
	return 0, fiber.ErrUnauthorized
}

// GetRoleFromCtx extracts the role claim.
func GetRoleFromCtx(c *fiber.Ctx) (string, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return "", err
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		return role, nil
	}
	return "", fiber.ErrUnauthorized
}

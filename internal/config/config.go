package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// AdminEmails is the allow-list of emails that receive the admin role
	// at registration time. Roles are never derived from user-supplied
	// display names.
	AdminEmails []string

	RedisAddr string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	MailTo   string

	PaymentAPIURL string
	PaymentAPIKey string

	GitHubUser  string
	GitHubToken string
}

func Load() Config {
	addr := os.Getenv("FOLIO_SHOP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "folio-shop"
	}
	audience := os.Getenv("JWT_AUDIENCE")
	if audience == "" {
		audience = "folio-shop-web"
	}

	smtpPort := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			smtpPort = v
		}
	}

	return Config{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     issuer,
		JWTAudience:   audience,
		AdminEmails:   splitList(os.Getenv("ADMIN_EMAILS")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      smtpPort,
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		MailTo:        os.Getenv("MAIL_TO"),
		PaymentAPIURL: os.Getenv("PAYMENT_API_URL"),
		PaymentAPIKey: os.Getenv("PAYMENT_API_KEY"),
		GitHubUser:    os.Getenv("GITHUB_USER"),
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsAdminEmail reports whether email is on the admin allow-list.
// The comparison is case-insensitive.
func (c Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

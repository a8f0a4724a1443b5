package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"github.com/wichananm65/folio-shop-backend/internal/address"
	"github.com/wichananm65/folio-shop-backend/internal/cart"
	"github.com/wichananm65/folio-shop-backend/internal/category"
	"github.com/wichananm65/folio-shop-backend/internal/config"
	"github.com/wichananm65/folio-shop-backend/internal/contact"
	"github.com/wichananm65/folio-shop-backend/internal/db"
	"github.com/wichananm65/folio-shop-backend/internal/devprofile"
	"github.com/wichananm65/folio-shop-backend/internal/mailer"
	"github.com/wichananm65/folio-shop-backend/internal/order"
	"github.com/wichananm65/folio-shop-backend/internal/outbox"
	"github.com/wichananm65/folio-shop-backend/internal/payment"
	"github.com/wichananm65/folio-shop-backend/internal/post"
	"github.com/wichananm65/folio-shop-backend/internal/product"
	"github.com/wichananm65/folio-shop-backend/internal/project"
	"github.com/wichananm65/folio-shop-backend/internal/skill"
	"github.com/wichananm65/folio-shop-backend/internal/todo"
	"github.com/wichananm65/folio-shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, "migrations"); err != nil {
		panic(err)
	}

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer cache.Close()
	}

	tokens := user.TokenConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      72 * time.Hour,
	}

	userService := user.NewService(user.NewPostgresRepository(conn), cfg)
	userHandler := user.NewHandler(userService, tokens)

	productService := product.NewService(product.NewPostgresRepository(conn))
	productHandler := product.NewHandler(productService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(conn)))
	cartHandler := cart.NewHandler(cart.NewService(cart.NewPostgresRepository(conn)))

	orderService := order.NewService(order.NewPostgresRepository(conn))
	orderHandler := order.NewHandler(orderService)

	paymentClient := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
	paymentHandler := payment.NewHandler(orderService, paymentClient)

	outboxRepo := outbox.NewPostgresRepository(conn)
	contactHandler := contact.NewHandler(outboxRepo, cfg.MailTo)

	githubHandler := devprofile.NewHandler(devprofile.NewClient(cfg.GitHubUser, cfg.GitHubToken, cache))

	postHandler := post.NewHandler(post.NewService(post.NewPostgresRepository(conn)))
	projectHandler := project.NewHandler(project.NewService(project.NewPostgresRepository(conn)))
	skillHandler := skill.NewHandler(skill.NewService(skill.NewPostgresRepository(conn)))
	todoHandler := todo.NewHandler(todo.NewService(todo.NewPostgresRepository(conn)))
	addressHandler := address.NewHandler(address.NewService(address.NewPostgresRepository(conn)))

	// One JWT gate for the whole API. Public endpoints skip it when no
	// token is presented; a presented token is always verified so public
	// handlers can tailor responses for admins.
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter: func(c *fiber.Ctx) bool {
			return isPublicRoute(c.Method(), c.Path()) && c.Get(fiber.HeaderAuthorization) == ""
		},
	}))
	app.Use(user.ClaimsCheck(cfg.JWTIssuer, cfg.JWTAudience))

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	postHandler.RegisterPublicRoutes(app)
	projectHandler.RegisterPublicRoutes(app)
	skillHandler.RegisterPublicRoutes(app)
	githubHandler.RegisterPublicRoutes(app)
	contactHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	todoHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)

	productHandler.RegisterAdminRoutes(app)
	categoryHandler.RegisterAdminRoutes(app)
	postHandler.RegisterAdminRoutes(app)
	projectHandler.RegisterAdminRoutes(app)
	skillHandler.RegisterAdminRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	smtp := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	poller := outbox.NewPoller(outboxRepo, smtp)
	go poller.Run(ctx)

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

// isPublicRoute lists the endpoints that are reachable without a token.
func isPublicRoute(method, path string) bool {
	switch method {
	case fiber.MethodGet:
		for _, prefix := range []string{
			"/api/products",
			"/api/categories",
			"/api/posts",
			"/api/projects",
			"/api/skills",
			"/api/github/",
		} {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
	case fiber.MethodPost:
		switch path {
		case "/api/auth/register", "/api/auth/login", "/api/contact", "/api/payments/webhook":
			return true
		}
	}
	return false
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("URL = %s, Method = %s, Status = %d, Took = %v\n", c.OriginalURL(), c.Method(), c.Response().StatusCode(), time.Since(start))
	return err
}

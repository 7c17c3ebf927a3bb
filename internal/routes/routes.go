package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/bankist/bankist/internal/account"
	"github.com/bankist/bankist/internal/auth"
	"github.com/bankist/bankist/internal/bank"
	"github.com/bankist/bankist/internal/config"
	"github.com/bankist/bankist/internal/middleware"
	"github.com/bankist/bankist/internal/notification"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Store  *account.Store
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	tokens := auth.NewService(d.Cfg.TokenSecret, d.Cfg.TokenTTL)
	notifier := notification.NewLoggerNotifier(d.Logger)
	bankSvc := bank.NewService(d.Store, tokens, notifier, d.Cfg.InterestMinimum)
	bankHandler := bank.NewHandler(bankSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	api.Post("/auth/login", bankHandler.Login)

	// Protected routes: the bearer token must match the active session.
	sessionmw := middleware.Session(tokens, d.Store)
	protected := api.Group("", sessionmw)
	RegisterBankRoutes(protected, bankHandler)

	return nil
}

package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/redis/go-redis/v9"

	"account-service/internal/config"
	"account-service/internal/http/handlers"
	"account-service/internal/http/middleware"
	"account-service/internal/infra/logging"
)

// Deps carries everything the HTTP server needs.
type Deps struct {
	Config config.Config
	Store  handlers.AccountStore
	Redis  *redis.Client
}

// New creates and configures the Fiber app with middleware and routes.
// All errors, including 404 and 405, render the JSON error envelope.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               d.Config.Server.Prefork,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			logging.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)

			return c.Status(code).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    code,
					"message": msg,
				},
			})
		},
	})

	middleware.Register(app, d.Config)
	registerRoutes(app, d)

	return app
}

// registerRoutes mounts all route handlers to the app.
func registerRoutes(app *fiber.App, d Deps) {
	svc := handlers.NewAccountService(d.Config, d.Store, d.Redis)

	app.Get("/", svc.HandleIndex)
	app.Get("/health", svc.HandleHealth)
	app.Get("/monitor", monitor.New())

	accounts := app.Group("/accounts")
	accounts.Post("/", svc.HandleCreate)
	accounts.Get("/", svc.HandleList)
	accounts.Get("/:id", svc.HandleGet)
	accounts.Put("/:id", svc.HandleUpdate)
	accounts.Delete("/:id", svc.HandleDelete)
}

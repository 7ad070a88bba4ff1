package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/xid"

	"account-service/internal/config"
	"account-service/internal/infra/logging"
	"account-service/internal/infra/ratelimit"
)

// Register attaches the global middleware stack to the app.
func Register(app *fiber.App, cfg config.Config) {
	app.Use(Secure(SecurityConfig{ForceHTTPS: cfg.Security.ForceHTTPS}))

	app.Use(cors.New())

	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))

	store := ratelimit.NewStore(ratelimit.RedisConfig{
		Addr: cfg.Cache.RedisHost,
		DB:   cfg.Cache.RateLimitDB,
	})
	app.Use(UserRateLimit(RateLimitConfig{
		RateInterval:      cfg.RateLimiter.Interval.Std(),
		UserLimit:         cfg.RateLimiter.UserLimit,
		EnableUserLimiter: cfg.RateLimiter.EnableUserLimiter,
	}, store))

	app.Use(func(c *fiber.Ctx) error {
		logging.Info("Incoming request",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		)
		return c.Next()
	})
}

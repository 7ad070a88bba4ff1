package ratelimit

import (
	"github.com/gofiber/fiber/v2"
	memoryStorage "github.com/gofiber/storage/memory/v2"
	redisStorage "github.com/gofiber/storage/redis/v2"

	"account-service/internal/infra/logging"
)

// RedisConfig identifies the Redis database backing the limiter.
type RedisConfig struct {
	Addr string
	DB   int
}

// NewStore returns a Redis-backed fiber storage, falling back to an
// in-process memory store when Redis is not configured or unreachable.
func NewStore(cfg RedisConfig) fiber.Storage {
	if cfg.Addr == "" {
		return memoryStorage.New()
	}

	var store fiber.Storage = memoryStorage.New()
	func() {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("Redis limiter store init panicked, falling back to memory", "panic", r)
			}
		}()
		store = redisStorage.New(redisStorage.Config{
			Addrs:    []string{cfg.Addr},
			Database: cfg.DB,
		})
		logging.Info("Using Redis for rate limiting", "addr", cfg.Addr, "db", cfg.DB)
	}()
	return store
}

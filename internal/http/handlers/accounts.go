package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"account-service/internal/config"
	"account-service/internal/domain"
	"account-service/internal/infra/logging"
)

const (
	serviceName    = "Account REST API Service"
	serviceVersion = "1.0"
)

// AccountStore is the persistence surface the handlers need.
type AccountStore interface {
	Create(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, id int64) error
}

// AccountService bundles configuration and dependencies for the account
// handlers.
type AccountService struct {
	Config *config.Config
	Store  AccountStore
	Redis  *redis.Client
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(cfg config.Config, store AccountStore, rdb *redis.Client) *AccountService {
	return &AccountService{
		Config: &cfg,
		Store:  store,
		Redis:  rdb,
	}
}

// HandleIndex serves the root URL response.
func (svc *AccountService) HandleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    serviceName,
		"version": serviceVersion,
	})
}

// HandleHealth reports liveness.
func (svc *AccountService) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK"})
}

// HandleCreate creates an account from the posted JSON body.
func (svc *AccountService) HandleCreate(c *fiber.Ctx) error {
	if err := requireJSON(c); err != nil {
		return err
	}
	account, err := decodeAccount(c)
	if err != nil {
		return err
	}
	account.ID = 0
	if account.DateJoined.IsZero() {
		account.DateJoined = domain.Today()
	}

	if err := svc.Store.Create(c.Context(), account); err != nil {
		return storeError(err, 0)
	}

	requestID := c.GetRespHeader(fiber.HeaderXRequestID)
	logging.Info("Account created", "id", account.ID, "request_id", requestID)

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/accounts/%d", account.ID))
	return c.Status(fiber.StatusCreated).JSON(account)
}

// HandleList returns all accounts.
func (svc *AccountService) HandleList(c *fiber.Ctx) error {
	accounts, err := svc.Store.List(c.Context())
	if err != nil {
		return storeError(err, 0)
	}
	logging.Info("Accounts listed", "count", len(accounts))
	return c.JSON(accounts)
}

// HandleGet returns a single account, served from the Redis cache when a
// fresh copy is available.
func (svc *AccountService) HandleGet(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return err
	}

	if cached := svc.cachedAccount(c, id); cached != nil {
		return c.JSON(cached)
	}

	account, err := svc.Store.Get(c.Context(), id)
	if err != nil {
		return storeError(err, id)
	}

	svc.cacheAccount(c, account)
	return c.JSON(account)
}

// HandleUpdate rewrites an existing account from the request body.
func (svc *AccountService) HandleUpdate(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return err
	}
	if err := requireJSON(c); err != nil {
		return err
	}
	account, err := decodeAccount(c)
	if err != nil {
		return err
	}
	account.ID = id
	if account.DateJoined.IsZero() {
		account.DateJoined = domain.Today()
	}

	if err := svc.Store.Update(c.Context(), account); err != nil {
		return storeError(err, id)
	}

	svc.dropCachedAccount(c, id)
	logging.Info("Account updated", "id", id)
	return c.JSON(account)
}

// HandleDelete removes an account.
func (svc *AccountService) HandleDelete(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return err
	}

	if err := svc.Store.Delete(c.Context(), id); err != nil {
		return storeError(err, id)
	}

	svc.dropCachedAccount(c, id)
	logging.Info("Account deleted", "id", id)
	return c.SendStatus(fiber.StatusNoContent)
}

// accountID parses the :id route parameter.
func accountID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid account id")
	}
	return id, nil
}

// requireJSON rejects bodies that do not declare an application/json
// media type.
func requireJSON(c *fiber.Ctx) error {
	ct := c.Get(fiber.HeaderContentType)
	mt, _, _ := strings.Cut(ct, ";")
	if strings.TrimSpace(mt) == fiber.MIMEApplicationJSON {
		return nil
	}
	logging.Error("Invalid Content-Type", "content_type", ct)
	return fiber.NewError(fiber.StatusUnsupportedMediaType, "Content-Type must be application/json")
}

func decodeAccount(c *fiber.Ctx) (*domain.Account, error) {
	var a domain.Account
	if err := json.Unmarshal(c.Body(), &a); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid account payload: "+err.Error())
	}
	if err := a.Validate(); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return &a, nil
}

// storeError maps repository failures onto HTTP errors.
func storeError(err error, id int64) error {
	if errors.Is(err, domain.ErrAccountNotFound) {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Account id [%d] could not be found", id))
	}
	logging.Error("Account store failure", "error", err.Error())
	return fiber.NewError(fiber.StatusInternalServerError, "Account store failure")
}

func accountCacheKey(id int64) string {
	return "account:" + strconv.FormatInt(id, 10)
}

func (svc *AccountService) cacheEnabled() bool {
	return svc.Redis != nil && svc.Config.Cache.AccountCacheEnabled
}

// cachedAccount attempts to retrieve a cached account from Redis.
func (svc *AccountService) cachedAccount(c *fiber.Ctx, id int64) *domain.Account {
	if !svc.cacheEnabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Context(), 1*time.Second)
	defer cancel()

	raw, err := svc.Redis.Get(ctx, accountCacheKey(id)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		logging.Warn("Redis read failed", "error", err)
		return nil
	}

	var a domain.Account
	if err := json.Unmarshal(raw, &a); err != nil {
		logging.Warn("Dropping undecodable cached account", "id", id, "error", err)
		return nil
	}
	logging.Info("Account cache hit", "id", id)
	return &a
}

// cacheAccount stores an account in Redis with the configured TTL.
func (svc *AccountService) cacheAccount(c *fiber.Ctx, a *domain.Account) {
	if !svc.cacheEnabled() {
		return
	}
	ctx, cancel := context.WithTimeout(c.Context(), 1*time.Second)
	defer cancel()

	raw, err := json.Marshal(a)
	if err != nil {
		return
	}
	ttl := svc.Config.Cache.AccountCacheTTL.Std()
	if ttl <= 0 {
		ttl = 1 * time.Minute
	}
	if err := svc.Redis.Set(ctx, accountCacheKey(a.ID), raw, ttl).Err(); err != nil {
		logging.Warn("Redis write failed", "error", err)
	}
}

// dropCachedAccount invalidates the cached copy after a write.
func (svc *AccountService) dropCachedAccount(c *fiber.Ctx, id int64) {
	if !svc.cacheEnabled() {
		return
	}
	ctx, cancel := context.WithTimeout(c.Context(), 1*time.Second)
	defer cancel()

	if err := svc.Redis.Del(ctx, accountCacheKey(id)).Err(); err != nil {
		logging.Warn("Redis delete failed", "error", err)
	}
}

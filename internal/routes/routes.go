package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/viet-pay/viet_pay/internal/config"
	"github.com/viet-pay/viet_pay/internal/middleware"
	"github.com/viet-pay/viet_pay/internal/qr"
	"github.com/viet-pay/viet_pay/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// main also checks, but routes must not silently fall back to the
	// in-memory store outside of dev.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)

	var store wallet.Store
	if d.DB != nil {
		store = wallet.NewPostgresStore(d.DB)
	} else {
		store = wallet.NewMemoryStore()
	}

	refs := qr.NewBuilder(d.Cfg.QRImageURL, d.Cfg.QRAccountName)
	walletSvc := wallet.NewService(store, refs)
	walletHandler := wallet.NewHandler(walletSvc, d.Cfg.CurrencyExponent)

	api := app.Group("/api/v1", middleware.APIKey(d.Cfg.APIKeyHash))
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	var idem fiber.Handler
	if d.Cache != nil {
		idem = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	RegisterWalletRoutes(api, walletHandler, idem)

	return nil
}

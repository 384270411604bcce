// Package app wires configuration, the store, the session and event
// infrastructure, the dashboards and the HTTP surface into one runnable
// storefront.
package app

import (
	"context"
	"time"

	"aroundyou/internal/config"
	"aroundyou/internal/dashboard"
	"aroundyou/internal/events"
	"aroundyou/internal/handlers"
	"aroundyou/internal/logging"
	"aroundyou/internal/metrics"
	"aroundyou/internal/middleware"
	"aroundyou/internal/services"
	"aroundyou/internal/session"
	"aroundyou/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// App is a fully wired storefront.
type App struct {
	Config *config.Config
	Fiber  *fiber.App
	Store  *Store

	Auth     *services.AuthService
	Profiles *services.ProfileService
	Shops    *services.ShopService
	Products *services.ProductService
	Orders   *services.OrderService
	Registry *dashboard.Registry

	publisher events.Publisher
	mq        *rabbitmq.Client
	redis     *session.RedisStore
	log       zerolog.Logger
}

// New builds the storefront described by cfg. Redis and RabbitMQ are used
// when configured; otherwise sign-outs are tracked in memory and events are
// dropped.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, log: logging.Component("app")}

	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	a.Store = store

	var revoked session.RevocationStore = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		a.redis, err = session.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			a.Close()
			return nil, err
		}
		revoked = a.redis
	}

	a.publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		a.mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.EventsExchange})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.publisher = a.mq
		if err := a.mq.ConsumeEvents(rabbitmq.LogEvent); err != nil {
			a.log.Error().Err(err).Msg("failed to start event consumer")
		}
	}

	a.Auth = services.NewAuthService(store.Users, revoked, a.publisher, cfg.JWTSecret, cfg.JWTTTL)
	a.Profiles = services.NewProfileService(store.Users)
	a.Shops = services.NewShopService(store.Shops, a.publisher)
	a.Products = services.NewProductService(store.Products, a.publisher)
	a.Orders = services.NewOrderService(store.Orders, a.publisher)
	a.Registry = dashboard.NewRegistry(dashboard.Backend{
		Shops:    a.Shops,
		Products: a.Products,
		Orders:   a.Orders,
	})

	a.Fiber = a.routes()
	return a, nil
}

func (a *App) routes() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "aroundyou",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(metrics.Middleware())

	app.Get("/health", a.handleHealth)
	app.Get("/metrics", metrics.Handler())

	requireAuth := middleware.AuthRequired(a.Auth)
	requireProfile := middleware.ProfileRequired(a.Profiles)

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(a.Auth, a.Registry).RegisterRoutes(apiV1, requireAuth)
	handlers.NewDiscoveryHandler(a.Config.MapboxToken).RegisterRoutes(apiV1)
	handlers.NewSessionHandler(a.Profiles, a.Registry).RegisterRoutes(apiV1, requireAuth)
	handlers.NewConsumerHandler(a.Registry).RegisterRoutes(apiV1, requireAuth, requireProfile)
	handlers.NewMerchantHandler(a.Registry).RegisterRoutes(apiV1, requireAuth, requireProfile)
	return app
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	eventsStatus := "disabled"
	if a.mq != nil {
		eventsStatus = "rabbitmq"
	}
	sessions := "memory"
	if a.redis != nil {
		sessions = "redis"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":     "healthy",
		"time":       time.Now().Format(time.RFC3339),
		"store":      a.Config.StoreDriver,
		"events":     eventsStatus,
		"sessions":   sessions,
		"dashboards": a.Registry.Len(),
	})
}

// Listen serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Listen(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.Config.AppPort).Msg("starting server")
		errc <- a.Fiber.Listen(a.Config.AppPort)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down server")
	if err := a.Fiber.ShutdownWithTimeout(10 * time.Second); err != nil {
		a.log.Error().Err(err).Msg("error during shutdown")
		return err
	}
	a.log.Info().Msg("server gracefully stopped")
	return nil
}

// Close releases the broker, Redis and database connections.
func (a *App) Close() {
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			a.log.Error().Err(err).Msg("error closing RabbitMQ client")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error().Err(err).Msg("error closing Redis client")
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.log.Error().Err(err).Msg("error closing store")
		}
	}
}

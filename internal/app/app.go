// Package app wires the storefront client together: storage backend
// selection, session and cart managers, and the backend API client.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vinicius-Leon/leons-cupcake/internal/api"
	"github.com/Vinicius-Leon/leons-cupcake/internal/cart"
	"github.com/Vinicius-Leon/leons-cupcake/internal/config"
	"github.com/Vinicius-Leon/leons-cupcake/internal/session"
	"github.com/Vinicius-Leon/leons-cupcake/internal/storage"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/health"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/httpclient"
)

// App holds the wired application components. UI layers reach the managers
// and the API client through it.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	rdb     *redis.Client
	Session *session.Manager
	Cart    *cart.Manager
	API     *api.Client
	Health  *health.Registry
}

// NewApp creates an application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, rdb, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	sessionMgr := session.NewManager(store, logger)
	cartMgr := cart.NewManager(store, logger)

	// Logout clears the session's storage keys; the cart manager still holds
	// its in-memory sequence, so the clear has to go through it.
	sessionMgr.OnLogout(cartMgr.Clear)

	transport := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("storefront-backend"),
		logger,
	)
	apiClient := api.NewClient(cfg.APIBaseURL, transport, sessionMgr, logger)

	// Health checks.
	registry := health.NewRegistry(5 * time.Second)
	registry.Register("backend", apiClient.Ping)
	if rdb != nil {
		registry.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	} else {
		registry.Register("storage", func(ctx context.Context) error {
			return store.Set(storage.KeyHealthProbe, []byte("ok"))
		})
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		rdb:     rdb,
		Session: sessionMgr,
		Cart:    cartMgr,
		API:     apiClient,
		Health:  registry,
	}, nil
}

// newStore selects the durable storage backend from configuration. The
// returned redis client is nil for the file backend.
func newStore(cfg *config.Config, logger *slog.Logger) (storage.Store, *redis.Client, error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		return storage.NewRedisStore(rdb, cfg.RedisPrefix), rdb, nil

	case config.StorageFile:
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file storage: %w", err)
		}
		logger.Info("using file storage", slog.String("dir", cfg.DataDir))
		return store, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
	}
}

// Shutdown releases held resources.
func (a *App) Shutdown() error {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	a.logger.Info("application shutdown complete")
	return nil
}

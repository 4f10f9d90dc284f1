// Command loccar-web serves the LocCar rental front-end: browser sessions,
// route guards and the page API in front of the rental backend.
//
// @title        LocCar Web API
// @version      1.0
// @description  Session and role-gated page API of the LocCar rental front-end.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/loccar/loccar-web/internal/api"
	"github.com/loccar/loccar-web/internal/core/ports"
	"github.com/loccar/loccar-web/internal/core/service"
	"github.com/loccar/loccar-web/internal/core/session"
	"github.com/loccar/loccar-web/internal/infrastructure/backend"
	"github.com/loccar/loccar-web/internal/infrastructure/db/mongo"
	"github.com/loccar/loccar-web/internal/infrastructure/http/handlers"
	"github.com/loccar/loccar-web/internal/infrastructure/queue"
	"github.com/loccar/loccar-web/internal/infrastructure/store/memory"
	redisstore "github.com/loccar/loccar-web/internal/infrastructure/store/redis"
	"github.com/loccar/loccar-web/internal/infrastructure/store/seal"
	"github.com/loccar/loccar-web/internal/pkg/config"
	"github.com/loccar/loccar-web/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "loccar-web",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("loccar-web stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	readiness := handlers.NewReadinessHandler()

	// --- Token store ---
	sealer, err := seal.New(cfg.Session.StoreKey)
	if err != nil {
		return err
	}
	if sealer == nil {
		log.Warn().Msg("SESSION_STORE_KEY not set, session values are stored unsealed")
	}

	var factory session.StoreFactory
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)
		factory = redisstore.NewFactory(rdb, redisstore.Options{TTL: cfg.Session.TTL, Sealer: sealer}, logger.Component("token_store"))
		readiness.Add("redis", handlers.RedisCheck(rdb))
	} else {
		log.Warn().Msg("REDIS_ADDR not set, sessions are kept in memory and lost on restart")
		factory = memory.NewBackend().Factory()
	}

	if cfg.Session.ExpiryCheck {
		policy := session.FailOpen
		if cfg.Session.ExpiryFailClosed {
			policy = session.FailClosed
		}
		inner := factory
		expiryLog := logger.Component("expiry")
		factory = func(clientID string) session.Store {
			return session.NewExpiryFilter(inner(clientID), policy, expiryLog)
		}
	}

	registry := session.NewRegistry(factory, logger.Component("session"))

	// --- Audit trail ---
	var (
		recorder ports.AuthEventRecorder
		events   ports.AuthEventRepository
	)
	workers, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if cfg.Mongo.URI != "" {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, Timeout: cfg.Mongo.Timeout})
		if err != nil {
			return err
		}
		defer disconnectMongo(client, log)

		repo := mongo.NewAuthEventRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("auth_events index not created")
		}
		dispatcher := queue.NewDispatcher(cfg.Audit.Workers, repo, logger.Component("audit"))
		dispatcher.Start(workers)
		defer dispatcher.Wait()
		defer cancelWorkers()

		recorder, events = dispatcher, repo
		readiness.Add("mongodb", handlers.MongoCheck(db))
	} else {
		log.Info().Msg("MONGO_URI not set, auth audit trail disabled")
	}

	// --- Backend and services ---
	bc := backend.NewClient(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, logger.Component("backend"))
	gateway := service.NewAuthGateway(bc, recorder, logger.Component("auth"))
	bc.SetUnauthorizedHandler(gateway.HandleUnauthorized)
	readiness.Add("backend", bc.Ping)

	catalog := service.NewCatalogService(bc, events, logger.Component("catalog"))

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Log:          logger.Component("http"),
		Registry:     registry,
		Auth:         gateway,
		Catalog:      catalog,
		Readiness:    readiness,
		CookieSecure: cfg.CookieSecure,
	})
	e.Server.ReadHeaderTimeout = 5 * time.Second

	go registry.Run(ctx, sweepInterval, cfg.Session.IdleTTL)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("loccar-web listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}
}

func disconnectMongo(client *mongodriver.Client, log zerolog.Logger) {
	if err := mongo.Disconnect(context.Background(), client, shutdownTimeout); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect")
	}
}

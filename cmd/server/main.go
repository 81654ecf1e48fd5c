// @title                       WOIYA Marketplace API
// @version                     1.0
// @description                 Local services marketplace: jobs, bids, escrow payments, messaging and ratings.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/woiya/marketplace/internal/api"
	"github.com/woiya/marketplace/internal/api/metrics"
	"github.com/woiya/marketplace/internal/core/service"
	"github.com/woiya/marketplace/internal/infrastructure/config"
	mongodb "github.com/woiya/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/woiya/marketplace/internal/infrastructure/db/redis"
	"github.com/woiya/marketplace/internal/infrastructure/gateway"
	"github.com/woiya/marketplace/internal/infrastructure/http/handlers"
	"github.com/woiya/marketplace/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "optional YAML config file; environment variables override it")
	flag.Parse()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		bootLogger().Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "woiya-api",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.IsDevelopment() && cfg.JWTSecret == config.DevJWTSecret {
		log.Warn().Msg("using the built-in development JWT secret")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	jobs := mongodb.NewJobRepository(db)
	bids := mongodb.NewBidRepository(db)
	payments := mongodb.NewPaymentRepository(db)
	messages := mongodb.NewMessageRepository(db)
	ratings := mongodb.NewRatingRepository(db)
	tx := mongodb.NewTransactor(client)

	// --- Collaborators ---
	locker := redisdb.NewLocker(rdb, logger.For("lock"))
	gw := gateway.NewMockGateway(gateway.Delays{
		Initiate: cfg.Gateway.InitiateDelay,
		Status:   cfg.Gateway.StatusDelay,
		Refund:   cfg.Gateway.RefundDelay,
	}, metrics.ObserveGateway, logger.For("gateway"))

	// --- Services ---
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	svc := api.Services{
		Auth: service.NewAuthService(users, tokens, logger.For("auth")),
		Jobs: service.NewJobService(jobs, bids, users, tx, logger.For("jobs")),
		Payments: service.NewPaymentService(service.PaymentDeps{
			Payments: payments,
			Jobs:     jobs,
			Bids:     bids,
			Users:    users,
			Gateway:  gw,
			Tx:       tx,
			Locker:   locker,
		}, cfg.EscrowHold, logger.For("payments")),
		Messages: service.NewMessageService(messages, users, logger.For("messages")),
		Ratings:  service.NewRatingService(ratings, users, jobs, logger.For("ratings")),
		Accounts: service.NewAccountService(users, jobs, bids, payments),
	}

	e := api.NewRouter(svc, api.Options{
		Logger:        logger.For("http"),
		AuthRateLimit: cfg.AuthRateLimit,
		Checkers:      []handlers.Checker{handlers.MongoChecker(client), handlers.RedisChecker(rdb)},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

// bootLogger is used before the configured logger exists.
func bootLogger() *zerolog.Logger {
	l := zerolog.New(os.Stderr).With().Timestamp().Str("service", "woiya-api").Logger()
	return &l
}

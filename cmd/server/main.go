// @title        Storefront API
// @version      1.0
// @description  Catalog service with authentication, role-gated administration, and session tokens.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erosmarket/storefront/internal/api"
	"github.com/erosmarket/storefront/internal/infrastructure/config"
	mongodb "github.com/erosmarket/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/erosmarket/storefront/internal/infrastructure/db/redis"
	"github.com/erosmarket/storefront/internal/pkg/digest"
	"github.com/erosmarket/storefront/internal/token"
	"github.com/erosmarket/storefront/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		boot := logger.Get()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := mongodb.SeedProducts(ctx, mongodb.NewProductRepository(db), log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed catalog")
	}

	rdb, err := redisdb.ConnectOptional(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Info().Msg("redis disabled; token revocation list unavailable")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	tokenCfg := token.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	}

	e, err := api.NewRouter(db, rdb, tokenCfg, digest.ForScheme(cfg.HashScheme), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("storefront stopped cleanly")
}

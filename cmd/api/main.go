// Command api serves the bookstore catalog over HTTP.
//
// @title                       Bookstore Catalog API
// @version                     1.0
// @description                 Book catalog with JWT-protected CRUD.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/bookstore/catalog-api/docs"
	"github.com/bookstore/catalog-api/internal/api"
	"github.com/bookstore/catalog-api/internal/infrastructure/config"
	mongodb "github.com/bookstore/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookstore/catalog-api/internal/infrastructure/db/redis"
	"github.com/bookstore/catalog-api/internal/infrastructure/http"
	"github.com/bookstore/catalog-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "catalog-api",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:           cfg.Mongo.URI,
		Database:      cfg.Mongo.Database,
		Timeout:       cfg.Mongo.ConnectTimeout,
		SocketTimeout: cfg.Mongo.SocketTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("disconnect mongodb")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	var rdb *redis.Client
	if cfg.CacheEnabled() {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, book cache disabled")
			rdb = nil
		} else {
			defer rdb.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("book cache enabled")
		}
	}

	e := api.NewRouter(cfg, log, db, rdb)
	srv := http.NewServer(e, cfg.Addr(), cfg.ShutdownTimeout, log)

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("http server stopped")
		return
	}
	log.Info().Msg("bye")
}

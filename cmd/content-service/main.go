package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nitesh/content_service/internal/api"
	"github.com/nitesh/content_service/internal/cache"
	"github.com/nitesh/content_service/internal/config"
	"github.com/nitesh/content_service/internal/logging"
	"github.com/nitesh/content_service/internal/metrics"
	"github.com/nitesh/content_service/internal/search"
	"github.com/nitesh/content_service/internal/service"
	"github.com/nitesh/content_service/internal/store"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}

	db, err := sql.Open("postgres", cfg.PostgresURL())
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()
	// simple ping + wait (db might be starting in docker)
	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		log.WithError(err).Warnf("waiting for db: attempt %d", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("could not connect to db: %v", err)
	}

	if cfg.DBRunMigrations {
		if err := store.RunMigrations(db); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	}

	repo := store.NewPgStore(db)
	engine := search.NewEngine(repo, cfg.Search, log)

	var svc *service.Service
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis ping failed; suggestion cache will bypass on errors")
		}
		cancel()
		svc = service.NewService(engine, cache.NewSuggestCache(rdb, cfg.SuggestCacheTTL), log)
	} else {
		svc = service.NewService(engine, nil, log)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestID(), api.Logger(log), metrics.Middleware(), api.Timeout(cfg.RequestTimeout))
	api.RegisterRoutes(router, api.NewHandler(svc, repo, log))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

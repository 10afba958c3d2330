package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nssports/sportsbook/app"
	"github.com/nssports/sportsbook/app/analytics"
	"github.com/nssports/sportsbook/app/api"
	"github.com/nssports/sportsbook/app/betting"
	"github.com/nssports/sportsbook/app/database"
	"github.com/nssports/sportsbook/app/games"
	"github.com/nssports/sportsbook/app/ledger"
	"github.com/nssports/sportsbook/app/odds"
	"github.com/nssports/sportsbook/app/settlement"
	"github.com/nssports/sportsbook/internal/cache"
	"github.com/nssports/sportsbook/internal/logger"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	level := logger.LevelInfo
	if cfg.Env == "development" {
		level = logger.LevelDebug
	}
	lg := logger.NewZeroLogger(os.Stdout, level, logger.Fields{"service": "sportsbook"})

	var redisOpts *cache.RedisOptions
	if cfg.Cache.Backend == cache.RedisBackend {
		redisOpts = &cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		}
	}
	marginCache := cache.NewCache[odds.BoundQuote](cfg.Cache.Backend, redisOpts)
	riskCache := cache.NewCache[string](cfg.Cache.Backend, redisOpts)

	r := gin.Default()
	apiV1 := r.Group("/api/v1")
	apiV1.GET("/healthz", api.HealthCheck)

	odds.Init(apiV1, odds.Dependencies{
		DB:     db,
		Cache:  marginCache,
		Logger: lg,
	})
	analytics.Init(apiV1)

	ledgerRepo := ledger.NewRepository(db)
	ledgerSvc := ledger.Init(apiV1, ledger.Dependencies{
		DB:        db,
		RiskCache: riskCache,
	})

	_, scheduler := settlement.Init(apiV1, settlement.Dependencies{
		DB:         db,
		Config:     &cfg.Settlement,
		LedgerRepo: ledgerRepo,
		LedgerSvc:  ledgerSvc,
		Logger:     lg,
	})

	games.Init(apiV1, games.Dependencies{
		DB:            db,
		Trigger:       scheduler,
		WebhookSecret: cfg.ResultWebhookSecret,
		Logger:        lg,
	})

	betting.Init(apiV1, betting.Dependencies{
		DB:         db,
		LedgerRepo: ledgerRepo,
		LedgerSvc:  ledgerSvc,
	})

	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	go func() {
		lg.Info("starting API server", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal(err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error(err, nil)
	}
}

// @title         wallet-service API
// @version       1.0
// @description   Apple Wallet passes for coupons: generation, Wallet Web Service, merchant broadcasts.
// @BasePath      /
// @schemes       http
// @host          localhost:8081
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/vbncursed/vkr/wallet-service/docs"
	"github.com/vbncursed/vkr/wallet-service/internal/app"
	icfg "github.com/vbncursed/vkr/wallet-service/internal/config"
	ih "github.com/vbncursed/vkr/wallet-service/internal/http"
	"github.com/vbncursed/vkr/wallet-service/internal/queue"
)

func main() {
	cfg := icfg.Load()
	logger := app.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("startup")
	}
	defer a.Close()

	deps := ih.Deps{Service: a.Service, Store: a.Store, Config: cfg, Logger: logger}
	if rdb := icfg.NewRedisClient(ctx, cfg.Redis); rdb != nil {
		defer rdb.Close()
		deps.Redis = rdb
	} else if cfg.RateLimit.Enabled {
		logger.Warn().Msg("redis unavailable, rate limiting disabled")
	}
	e := ih.Router(deps)

	if cfg.BroadcastConsumer && cfg.RabbitURL != "" {
		consumer := queue.NewConsumer(cfg.RabbitURL, a.Service, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("broadcast consumer stopped")
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Bind,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("bind", cfg.Bind).Str("store", cfg.StoreDriver).Msg("wallet-service listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	cancel()

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(shutdownCtx)
}

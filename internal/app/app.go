// Package app собирает сервис из конфигурации: хранилище, подпись, APNs
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/passkit"
	"github.com/vbncursed/vkr/wallet-service/internal/push"
	"github.com/vbncursed/vkr/wallet-service/internal/repo"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// Store — хранилище, которое ещё и пингуется для /readyz
type Store interface {
	service.Store
	Ping(ctx context.Context) error
}

type App struct {
	Service  *service.Service
	Store    Store
	Identity *crypto.SigningIdentity
	closers  []func()
}

// NewLogger — JSON-логгер; LOG_FORMAT=console для разработки
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if os.Getenv("LOG_FORMAT") == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(lvl).With().Timestamp().Str("service", "wallet-service").Logger()
}

func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{}

	store, err := a.openStore(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store

	identity, err := signingIdentity(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Identity = identity

	assets, err := passkit.LoadAssets(cfg.AssetsDir)
	if err != nil {
		if !cfg.DevSigning || !errors.Is(err, passkit.ErrAssetMissing) {
			a.Close()
			return nil, fmt.Errorf("pass assets: %w", err)
		}
		logger.Warn().Str("dir", cfg.AssetsDir).Msg("pass assets missing, using placeholder icon")
		if assets, err = passkit.PlaceholderAssets(); err != nil {
			a.Close()
			return nil, err
		}
	}
	builder, err := passkit.NewBuilder(identity, assets)
	if err != nil {
		a.Close()
		return nil, err
	}

	style, err := config.LoadStyle(cfg.StyleFile)
	if err != nil {
		a.Close()
		return nil, err
	}

	pusher := push.NewClient(identity.TLSCertificate(), push.Options{
		Host:        cfg.APNs.Host,
		Topic:       cfg.PassTypeID,
		Delay:       cfg.APNs.Delay,
		Concurrency: cfg.APNs.Concurrency,
		Timeout:     cfg.APNs.Timeout,
	}, logger)

	a.Service = service.New(store, builder, pusher, service.RealClock{}, service.UUIDTokens{}, service.Options{
		PassTypeID:    cfg.PassTypeID,
		TeamID:        cfg.TeamID,
		WebServiceURL: cfg.WebServiceURL,
		Style:         style,
	}, logger)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (Store, error) {
	if cfg.StoreDriver == config.StoreMemory {
		mem := repo.NewMemoryStore(nil)
		repo.DemoData().SeedMemory(mem)
		logger.Warn().Str("serial", repo.DemoSerial).Msg("memory store with demo coupon, data is not persisted")
		return mem, nil
	}
	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	if err := repo.RunMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return repo.NewStore(pool), nil
}

// signingIdentity: без сертификатов сервис не стартует, кроме режима PASS_DEV_SIGNING
func signingIdentity(cfg config.Config, logger zerolog.Logger) (*crypto.SigningIdentity, error) {
	id, err := cfg.Signing.Identity()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, crypto.ErrMissing) || !cfg.DevSigning {
		logger.Error().Err(err).Msg("pass signing material is missing or invalid")
		return nil, fmt.Errorf("%w: %w", passkit.ErrSigningConfigMissing, err)
	}
	logger.Warn().Msg("generating self-signed pass certificate, devices will reject these passes")
	bundle, err := crypto.GenerateDevBundle(cfg.PassTypeID, cfg.TeamID)
	if err != nil {
		return nil, err
	}
	return bundle.Identity, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

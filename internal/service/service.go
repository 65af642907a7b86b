package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Service реализует жизненный цикл Wallet-пассов купонов
type Service struct {
	store   Store
	builder PassBuilder
	pusher  Pusher
	clock   Clock
	tokens  TokenSource
	opts    Options
	logger  zerolog.Logger
}

// New собирает сервис; pusher может быть nil — тогда рассылка только обновляет данные
func New(store Store, builder PassBuilder, pusher Pusher, clock Clock, tokens TokenSource, opts Options, logger zerolog.Logger) *Service {
	return &Service{
		store:   store,
		builder: builder,
		pusher:  pusher,
		clock:   clock,
		tokens:  tokens,
		opts:    opts,
		logger:  logger.With().Str("component", "wallet").Logger(),
	}
}

func (s *Service) PassTypeID() string { return s.opts.PassTypeID }

// GeneratePass — свежий подписанный пасс для установки по коду купона
func (s *Service) GeneratePass(ctx context.Context, serial string) (PassFile, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return PassFile{}, ErrInvalidRequest
	}
	pass, lastUpdated, err := s.Descriptor(ctx, serial)
	if err != nil {
		return PassFile{}, err
	}
	data, err := s.builder.Build(pass)
	if err != nil {
		s.logger.Error().Err(err).Str("serial", serial).Msg("pass build failed")
		return PassFile{}, err
	}
	return PassFile{SerialNumber: serial, Data: data, LastModified: lastUpdated}, nil
}

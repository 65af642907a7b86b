package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

const authScheme = "ApplePass "

// ParseAuthorization достаёт токен из заголовка "Authorization: ApplePass <token>"
func ParseAuthorization(header string) (string, bool) {
	if !strings.HasPrefix(header, authScheme) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(authScheme):])
	return tok, tok != ""
}

// authorize: неизвестный тип/серийник -> ErrNotFound, затем токен -> ErrUnauthorized.
// Хранилище регистраций до этого момента не трогается.
func (s *Service) authorize(ctx context.Context, passTypeID, serial, header string) (models.CouponBundle, error) {
	if passTypeID != s.opts.PassTypeID || strings.TrimSpace(serial) == "" {
		return models.CouponBundle{}, ErrNotFound
	}
	bundle, err := s.store.GetCoupon(ctx, serial)
	if err != nil {
		return models.CouponBundle{}, err
	}
	tok, ok := ParseAuthorization(header)
	stored := bundle.Coupon.AuthToken
	if !ok || stored == "" || subtle.ConstantTimeCompare([]byte(tok), []byte(stored)) != 1 {
		return models.CouponBundle{}, ErrUnauthorized
	}
	return bundle, nil
}

// AuthorizePass проверяет ApplePass-токен до того, как обработчик прочитает тело запроса
func (s *Service) AuthorizePass(ctx context.Context, passTypeID, serial, authHeader string) error {
	_, err := s.authorize(ctx, passTypeID, serial, authHeader)
	return err
}

// RegisterDevice — upsert регистрации; created=false, если устройство уже было подписано
func (s *Service) RegisterDevice(ctx context.Context, deviceID, passTypeID, serial, authHeader, pushToken string) (bool, error) {
	if _, err := s.authorize(ctx, passTypeID, serial, authHeader); err != nil {
		return false, err
	}
	deviceID = strings.TrimSpace(deviceID)
	pushToken = strings.TrimSpace(pushToken)
	if deviceID == "" || pushToken == "" {
		return false, ErrInvalidRequest
	}
	now := s.clock.Now().UTC()
	created, err := s.store.UpsertRegistration(ctx, models.DeviceRegistration{
		DeviceID:     deviceID,
		PushToken:    pushToken,
		PassTypeID:   passTypeID,
		SerialNumber: serial,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, err
	}
	s.logger.Info().Str("device_id", deviceID).Str("serial", serial).Bool("created", created).Msg("device registered")
	return created, nil
}

// UnregisterDevice — удаление регистрации; отсутствие строки ошибкой не считается
func (s *Service) UnregisterDevice(ctx context.Context, deviceID, passTypeID, serial, authHeader string) error {
	if _, err := s.authorize(ctx, passTypeID, serial, authHeader); err != nil {
		return err
	}
	if err := s.store.DeleteRegistration(ctx, deviceID, passTypeID, serial); err != nil {
		return err
	}
	s.logger.Info().Str("device_id", deviceID).Str("serial", serial).Msg("device unregistered")
	return nil
}

// UpdatedSerials — какие пассы устройства изменились после тега passesUpdatedSince.
// Пустой SerialNumbers означает "ничего нового" (204).
func (s *Service) UpdatedSerials(ctx context.Context, deviceID, passTypeID, tag string) (UpdatedSerialsResult, error) {
	if passTypeID != s.opts.PassTypeID {
		return UpdatedSerialsResult{}, nil
	}
	since := ParseUpdateTag(tag)
	serials, last, err := s.store.UpdatedSerials(ctx, deviceID, passTypeID, since)
	if err != nil {
		return UpdatedSerialsResult{}, err
	}
	if len(serials) == 0 {
		return UpdatedSerialsResult{}, nil
	}
	return UpdatedSerialsResult{LastUpdated: FormatUpdateTag(last), SerialNumbers: serials}, nil
}

// UpdatedPass пересобирает пасс, чтобы отразить свежие walletMessage/срок.
// notModified=true, если If-Modified-Since не старше последнего изменения.
func (s *Service) UpdatedPass(ctx context.Context, passTypeID, serial, authHeader string, ifModifiedSince time.Time) (PassFile, bool, error) {
	bundle, err := s.authorize(ctx, passTypeID, serial, authHeader)
	if err != nil {
		return PassFile{}, false, err
	}
	last := bundle.LastUpdated()
	if !ifModifiedSince.IsZero() && !last.Truncate(time.Second).After(ifModifiedSince) {
		return PassFile{SerialNumber: serial, LastModified: last}, true, nil
	}
	data, err := s.builder.Build(s.mapPass(bundle))
	if err != nil {
		s.logger.Error().Err(err).Str("serial", serial).Msg("pass rebuild failed")
		return PassFile{}, false, err
	}
	return PassFile{SerialNumber: serial, Data: data, LastModified: last}, false, nil
}

// DeviceLog пишет сообщения, которые Wallet присылает на /v1/log
func (s *Service) DeviceLog(messages []string) {
	for _, m := range messages {
		s.logger.Warn().Str("source", "wallet-device").Msg(m)
	}
}

// FormatUpdateTag — тег lastUpdated: микросекунды Unix
func FormatUpdateTag(t time.Time) string {
	return strconv.FormatInt(t.UnixMicro(), 10)
}

// ParseUpdateTag — невалидный или пустой тег означает "с начала времён"
func ParseUpdateTag(tag string) time.Time {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return time.Time{}
	}
	n, err := strconv.ParseInt(tag, 10, 64)
	if err != nil || n < 0 {
		return time.Time{}
	}
	return time.UnixMicro(n).UTC()
}

// IsClientError — ошибки, о которых не нужно кричать в лог
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidRequest)
}

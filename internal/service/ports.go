package service

import (
	"context"
	"time"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/push"
)

// Clock — абстракция времени для тестируемости
type Clock interface {
	Now() time.Time
}

// TokenSource — генератор authenticationToken
type TokenSource interface {
	NewToken() string
}

// CouponRepository — чтение купонов во внешнем хранилище и единственная запись: токен пасса
type CouponRepository interface {
	GetCoupon(ctx context.Context, serial string) (models.CouponBundle, error)
	// EnsureAuthToken записывает candidate, только если токена ещё нет, и возвращает сохранённое значение
	EnsureAuthToken(ctx context.Context, serial, candidate string) (string, error)
}

// RegistrationRepository — хранилище регистраций устройств; сервис — его единственный писатель
type RegistrationRepository interface {
	UpsertRegistration(ctx context.Context, r models.DeviceRegistration) (created bool, err error)
	DeleteRegistration(ctx context.Context, deviceID, passTypeID, serial string) error
	// UpdatedSerials — серийники устройства, изменившиеся строго после since, и максимум их updated
	UpdatedSerials(ctx context.Context, deviceID, passTypeID string, since time.Time) ([]string, time.Time, error)
	PushTokensForMerchant(ctx context.Context, merchantID, passTypeID string) ([]string, error)
	DeleteRegistrationsByPushToken(ctx context.Context, pushToken string) (int64, error)
}

// MerchantRepository — запись сообщения мерчанта для рассылки
type MerchantRepository interface {
	UpdateWalletMessage(ctx context.Context, merchantID, message string, expiresAt *time.Time) error
}

// Store — всё, что сервису нужно от хранилища
type Store interface {
	CouponRepository
	RegistrationRepository
	MerchantRepository
}

// PassBuilder — сборка подписанного .pkpass
type PassBuilder interface {
	Build(p *models.Pass) ([]byte, error)
}

// Pusher — отправка тихих уведомлений
type Pusher interface {
	Push(ctx context.Context, tokens []string) (push.BatchResult, error)
}

// Options — параметры деплоя, попадающие в каждый пасс
type Options struct {
	PassTypeID    string
	TeamID        string
	WebServiceURL string
	Style         models.PassStyle
}

// PassFile — готовый архив для отдачи устройству
type PassFile struct {
	SerialNumber string
	Data         []byte
	LastModified time.Time
}

// UpdatedSerialsResult — ответ на опрос изменений
type UpdatedSerialsResult struct {
	LastUpdated   string
	SerialNumbers []string
}

// BroadcastCommand — обновление сообщения мерчанта
type BroadcastCommand struct {
	MerchantID string
	Message    string
	ExpiresAt  *time.Time
}

type BroadcastResult struct {
	Devices      int
	Sent         int
	Failed       int
	Unregistered int
	Results      []push.Result
}

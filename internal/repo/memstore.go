package repo

import (
	"context"
	"sort"
	"strings"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// MemoryStore — хранилище в памяти для локального запуска и тестов.
// Времена усечены до микросекунд, как в Postgres, чтобы теги lastUpdated совпадали.
type MemoryStore struct {
	now           func() time.Time
	merchants     cmap.ConcurrentMap[string, models.Merchant]
	users         cmap.ConcurrentMap[string, models.User]
	coupons       cmap.ConcurrentMap[string, models.Coupon]
	registrations cmap.ConcurrentMap[string, models.DeviceRegistration]
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		now:           now,
		merchants:     cmap.New[models.Merchant](),
		users:         cmap.New[models.User](),
		coupons:       cmap.New[models.Coupon](),
		registrations: cmap.New[models.DeviceRegistration](),
	}
}

func (s *MemoryStore) stamp() time.Time { return s.now().UTC().Truncate(time.Microsecond) }

func registrationKey(deviceID, passTypeID, serial string) string {
	return deviceID + "\x00" + passTypeID + "\x00" + serial
}

// PutMerchant — seed; нулевой UpdatedAt заменяется текущим временем
func (s *MemoryStore) PutMerchant(m models.Merchant) {
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = s.stamp()
	}
	m.UpdatedAt = m.UpdatedAt.UTC().Truncate(time.Microsecond)
	s.merchants.Set(m.ID, m)
}

func (s *MemoryStore) PutUser(u models.User) { s.users.Set(u.ID, u) }

func (s *MemoryStore) PutCoupon(c models.Coupon) {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = s.stamp()
	}
	c.UpdatedAt = c.UpdatedAt.UTC().Truncate(time.Microsecond)
	s.coupons.Set(c.SerialNumber, c)
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) GetCoupon(_ context.Context, serial string) (models.CouponBundle, error) {
	c, ok := s.coupons.Get(serial)
	if !ok {
		return models.CouponBundle{}, service.ErrNotFound
	}
	b := models.CouponBundle{Coupon: c}
	if m, ok := s.merchants.Get(c.MerchantID); ok {
		b.Merchant = &m
	}
	if u, ok := s.users.Get(c.UserID); ok {
		b.User = &u
	}
	return b, nil
}

// EnsureAuthToken — Upsert выполняется под блокировкой шарда, поэтому побеждает первая запись
func (s *MemoryStore) EnsureAuthToken(_ context.Context, serial, candidate string) (string, error) {
	if !s.coupons.Has(serial) {
		return "", service.ErrNotFound
	}
	c := s.coupons.Upsert(serial, models.Coupon{}, func(exist bool, cur, _ models.Coupon) models.Coupon {
		if exist && cur.AuthToken == "" {
			cur.AuthToken = candidate
		}
		return cur
	})
	return c.AuthToken, nil
}

func (s *MemoryStore) UpsertRegistration(_ context.Context, r models.DeviceRegistration) (bool, error) {
	now := s.stamp()
	created := false
	s.registrations.Upsert(registrationKey(r.DeviceID, r.PassTypeID, r.SerialNumber), r,
		func(exist bool, cur, next models.DeviceRegistration) models.DeviceRegistration {
			if !exist {
				created = true
				next.CreatedAt = now
				next.UpdatedAt = now
				return next
			}
			cur.PushToken = next.PushToken
			cur.UpdatedAt = now
			return cur
		})
	return created, nil
}

func (s *MemoryStore) DeleteRegistration(_ context.Context, deviceID, passTypeID, serial string) error {
	s.registrations.Remove(registrationKey(deviceID, passTypeID, serial))
	return nil
}

func (s *MemoryStore) changedAt(serial string) (models.Coupon, time.Time, bool) {
	c, ok := s.coupons.Get(serial)
	if !ok {
		return models.Coupon{}, time.Time{}, false
	}
	t := c.UpdatedAt
	if m, ok := s.merchants.Get(c.MerchantID); ok && m.UpdatedAt.After(t) {
		t = m.UpdatedAt
	}
	return c, t, true
}

func (s *MemoryStore) UpdatedSerials(_ context.Context, deviceID, passTypeID string, since time.Time) ([]string, time.Time, error) {
	var (
		out  []string
		last time.Time
	)
	for item := range s.registrations.IterBuffered() {
		r := item.Val
		if r.DeviceID != deviceID || r.PassTypeID != passTypeID {
			continue
		}
		_, changed, ok := s.changedAt(r.SerialNumber)
		if !ok || !changed.After(since) {
			continue
		}
		out = append(out, r.SerialNumber)
		if changed.After(last) {
			last = changed
		}
	}
	sort.Strings(out)
	return out, last, nil
}

func (s *MemoryStore) PushTokensForMerchant(_ context.Context, merchantID, passTypeID string) ([]string, error) {
	seen := map[string]struct{}{}
	for item := range s.registrations.IterBuffered() {
		r := item.Val
		if r.PassTypeID != passTypeID {
			continue
		}
		c, ok := s.coupons.Get(r.SerialNumber)
		if !ok || c.MerchantID != merchantID {
			continue
		}
		seen[r.PushToken] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for tok := range seen {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) DeleteRegistrationsByPushToken(_ context.Context, pushToken string) (int64, error) {
	var n int64
	for item := range s.registrations.IterBuffered() {
		if item.Val.PushToken != pushToken {
			continue
		}
		if s.registrations.RemoveCb(item.Key, func(_ string, v models.DeviceRegistration, exists bool) bool {
			return exists && v.PushToken == pushToken
		}) {
			n++
		}
	}
	return n, nil
}

// UpdateWalletMessage сдвигает updated_at мерчанта строго вперёд, даже если часы стоят
func (s *MemoryStore) UpdateWalletMessage(_ context.Context, merchantID, message string, expiresAt *time.Time) error {
	if !s.merchants.Has(merchantID) {
		return service.ErrNotFound
	}
	now := s.stamp()
	s.merchants.Upsert(merchantID, models.Merchant{}, func(_ bool, cur, _ models.Merchant) models.Merchant {
		cur.WalletMessage = strings.TrimSpace(message)
		cur.WalletExpiresAt = expiresAt
		if now.After(cur.UpdatedAt) {
			cur.UpdatedAt = now
		} else {
			cur.UpdatedAt = cur.UpdatedAt.Add(time.Microsecond)
		}
		return cur
	})
	return nil
}

// Registrations — снимок регистраций, отсортированный по ключу
func (s *MemoryStore) Registrations() []models.DeviceRegistration {
	keys := s.registrations.Keys()
	sort.Strings(keys)
	out := make([]models.DeviceRegistration, 0, len(keys))
	for _, k := range keys {
		if r, ok := s.registrations.Get(k); ok {
			out = append(out, r)
		}
	}
	return out
}

var (
	_ service.Store = (*MemoryStore)(nil)
	_ service.Store = (*Store)(nil)
)

package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

const passType = "pass.com.example.coupon"

func seeded(t *testing.T) (*MemoryStore, *time.Time) {
	t.Helper()
	now := time.Date(2026, 1, 10, 12, 0, 0, 123456789, time.UTC)
	s := NewMemoryStore(func() time.Time { return now })
	s.PutMerchant(models.Merchant{ID: "m-1", Name: "Hot Pot 757"})
	s.PutMerchant(models.Merchant{ID: "m-2", Name: "Other"})
	s.PutCoupon(models.Coupon{SerialNumber: "HOTP-A1B2", MerchantID: "m-1"})
	s.PutCoupon(models.Coupon{SerialNumber: "HOTP-C3D4", MerchantID: "m-1"})
	s.PutCoupon(models.Coupon{SerialNumber: "OTHR-0001", MerchantID: "m-2"})
	return s, &now
}

func reg(device, token, serial string) models.DeviceRegistration {
	return models.DeviceRegistration{DeviceID: device, PushToken: token, PassTypeID: passType, SerialNumber: serial}
}

func TestMemoryStoreTruncatesToMicroseconds(t *testing.T) {
	s, _ := seeded(t)
	b, err := s.GetCoupon(context.Background(), "HOTP-A1B2")
	require.NoError(t, err)
	assert.Equal(t, 0, b.Coupon.UpdatedAt.Nanosecond()%1000)
	require.NotNil(t, b.Merchant)
	assert.Equal(t, "Hot Pot 757", b.Merchant.Name)
	assert.Nil(t, b.User)
}

func TestMemoryStoreGetCouponMissing(t *testing.T) {
	s, _ := seeded(t)
	_, err := s.GetCoupon(context.Background(), "NOPE")
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = s.EnsureAuthToken(context.Background(), "NOPE", "x")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestMemoryStoreUpsertIsIdempotent(t *testing.T) {
	s, _ := seeded(t)
	ctx := context.Background()

	created, err := s.UpsertRegistration(ctx, reg("dev-1", "push-1", "HOTP-A1B2"))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.UpsertRegistration(ctx, reg("dev-1", "push-2", "HOTP-A1B2"))
	require.NoError(t, err)
	assert.False(t, created)

	regs := s.Registrations()
	require.Len(t, regs, 1)
	assert.Equal(t, "push-2", regs[0].PushToken)
}

func TestMemoryStoreDeleteToleratesMissing(t *testing.T) {
	s, _ := seeded(t)
	assert.NoError(t, s.DeleteRegistration(context.Background(), "ghost", passType, "HOTP-A1B2"))
}

func TestMemoryStoreConcurrentTokenMintConverges(t *testing.T) {
	s, _ := seeded(t)
	const n = 32
	got := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := s.EnsureAuthToken(context.Background(), "HOTP-A1B2", fmt.Sprintf("candidate-%02d", i))
			assert.NoError(t, err)
			got[i] = tok
		}(i)
	}
	wg.Wait()
	for _, tok := range got {
		assert.Equal(t, got[0], tok)
	}
	b, err := s.GetCoupon(context.Background(), "HOTP-A1B2")
	require.NoError(t, err)
	assert.Equal(t, got[0], b.Coupon.AuthToken)
}

func TestMemoryStoreUpdatedSerialsFollowsMerchantChanges(t *testing.T) {
	s, now := seeded(t)
	ctx := context.Background()
	_, err := s.UpsertRegistration(ctx, reg("dev-1", "push-1", "HOTP-A1B2"))
	require.NoError(t, err)
	_, err = s.UpsertRegistration(ctx, reg("dev-1", "push-1", "OTHR-0001"))
	require.NoError(t, err)

	serials, last, err := s.UpdatedSerials(ctx, "dev-1", passType, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []string{"HOTP-A1B2", "OTHR-0001"}, serials)

	serials, _, err = s.UpdatedSerials(ctx, "dev-1", passType, last)
	require.NoError(t, err)
	assert.Empty(t, serials)

	*now = now.Add(time.Minute)
	require.NoError(t, s.UpdateWalletMessage(ctx, "m-1", "Expiring soon!", nil))

	serials, last2, err := s.UpdatedSerials(ctx, "dev-1", passType, last)
	require.NoError(t, err)
	assert.Equal(t, []string{"HOTP-A1B2"}, serials)
	assert.True(t, last2.After(last))
}

func TestMemoryStoreWalletMessageMovesForwardOnFrozenClock(t *testing.T) {
	s, _ := seeded(t)
	ctx := context.Background()
	before, err := s.GetCoupon(ctx, "HOTP-A1B2")
	require.NoError(t, err)

	require.NoError(t, s.UpdateWalletMessage(ctx, "m-1", "  Expiring soon!  ", nil))
	after, err := s.GetCoupon(ctx, "HOTP-A1B2")
	require.NoError(t, err)
	assert.Equal(t, "Expiring soon!", after.Merchant.WalletMessage)
	assert.True(t, after.Merchant.UpdatedAt.After(before.Merchant.UpdatedAt))

	assert.ErrorIs(t, s.UpdateWalletMessage(ctx, "ghost", "x", nil), service.ErrNotFound)
}

func TestMemoryStorePushTokensAndCleanup(t *testing.T) {
	s, _ := seeded(t)
	ctx := context.Background()
	for _, r := range []models.DeviceRegistration{
		reg("dev-1", "push-1", "HOTP-A1B2"),
		reg("dev-1", "push-1", "HOTP-C3D4"),
		reg("dev-2", "push-2", "HOTP-A1B2"),
		reg("dev-3", "push-3", "OTHR-0001"),
	} {
		_, err := s.UpsertRegistration(ctx, r)
		require.NoError(t, err)
	}

	tokens, err := s.PushTokensForMerchant(ctx, "m-1", passType)
	require.NoError(t, err)
	assert.Equal(t, []string{"push-1", "push-2"}, tokens)

	n, err := s.DeleteRegistrationsByPushToken(ctx, "push-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, s.Registrations(), 2)
}

package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/vkr/wallet-service/internal/push"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

func installedToken(t *testing.T, f *fixture) string {
	t.Helper()
	file, err := f.svc.GeneratePass(context.Background(), testSerial)
	require.NoError(t, err)
	return readPass(t, file.Data).AuthenticationToken
}

func TestParseAuthorization(t *testing.T) {
	tok, ok := service.ParseAuthorization("ApplePass abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)

	for _, h := range []string{"", "Bearer abc", "ApplePass ", "applepass abc"} {
		_, ok := service.ParseAuthorization(h)
		assert.False(t, ok, h)
	}
}

func TestRegisterDeviceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok := installedToken(t, f)

	created, err := f.svc.RegisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader(tok), "push-1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.svc.RegisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader(tok), "push-1b")
	require.NoError(t, err)
	assert.False(t, created)

	regs := f.store.Registrations()
	require.Len(t, regs, 1)
	assert.Equal(t, "push-1b", regs[0].PushToken)
}

func TestRegisterDeviceRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok := installedToken(t, f)

	_, err := f.svc.RegisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader("wrong-token-000000"), "push-1")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.svc.RegisterDevice(ctx, "dev-1", testPassType, testSerial, "", "push-1")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = f.svc.RegisterDevice(ctx, "dev-1", testPassType, "NOPE-0000", authHeader(tok), "push-1")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.svc.RegisterDevice(ctx, "dev-1", "pass.com.other", testSerial, authHeader(tok), "push-1")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.svc.RegisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader(tok), "  ")
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	assert.Empty(t, f.store.Registrations())
}

func TestAuthorizePass(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok := installedToken(t, f)

	assert.NoError(t, f.svc.AuthorizePass(ctx, testPassType, testSerial, authHeader(tok)))
	assert.ErrorIs(t, f.svc.AuthorizePass(ctx, testPassType, testSerial, authHeader("wrong-token-000000")), service.ErrUnauthorized)
	assert.ErrorIs(t, f.svc.AuthorizePass(ctx, testPassType, testSerial, ""), service.ErrUnauthorized)
	assert.ErrorIs(t, f.svc.AuthorizePass(ctx, testPassType, "NOPE-0000", authHeader(tok)), service.ErrNotFound)
	assert.Empty(t, f.store.Registrations())
}

func TestRegisterBeforeTokenMintedIsUnauthorized(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RegisterDevice(context.Background(), "dev-1", testPassType, testSerial, authHeader("anything-at-all-123"), "push-1")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestUnregisterDevice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok := installedToken(t, f)

	_, err := f.svc.RegisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader(tok), "push-1")
	require.NoError(t, err)

	require.NoError(t, f.svc.UnregisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader(tok)))
	assert.Empty(t, f.store.Registrations())

	// second call finds nothing to delete and still succeeds
	require.NoError(t, f.svc.UnregisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader(tok)))

	assert.ErrorIs(t, f.svc.UnregisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader("bad-token-00000000")), service.ErrUnauthorized)
}

func TestUpdatedSerialsTagRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok := installedToken(t, f)
	_, err := f.svc.RegisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader(tok), "push-1")
	require.NoError(t, err)

	res, err := f.svc.UpdatedSerials(ctx, "dev-1", testPassType, "")
	require.NoError(t, err)
	assert.Equal(t, []string{testSerial}, res.SerialNumbers)
	require.NotEmpty(t, res.LastUpdated)

	again, err := f.svc.UpdatedSerials(ctx, "dev-1", testPassType, res.LastUpdated)
	require.NoError(t, err)
	assert.Empty(t, again.SerialNumbers)

	garbage, err := f.svc.UpdatedSerials(ctx, "dev-1", testPassType, "not-a-tag")
	require.NoError(t, err)
	assert.Equal(t, []string{testSerial}, garbage.SerialNumbers)

	other, err := f.svc.UpdatedSerials(ctx, "dev-2", testPassType, "")
	require.NoError(t, err)
	assert.Empty(t, other.SerialNumbers)
}

func TestUpdateTagFormat(t *testing.T) {
	ts := time.Date(2026, 1, 10, 12, 0, 0, 123456000, time.UTC)
	tag := service.FormatUpdateTag(ts)
	assert.Equal(t, "1768046400123456", tag)
	assert.True(t, service.ParseUpdateTag(tag).Equal(ts))
	assert.True(t, service.ParseUpdateTag("-5").IsZero())
	assert.True(t, service.ParseUpdateTag("").IsZero())
}

func TestBroadcastReachesUpdatedPass(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok := installedToken(t, f)
	_, err := f.svc.RegisterDevice(ctx, "dev-1", testPassType, testSerial, authHeader(tok), "push-1")
	require.NoError(t, err)

	first, err := f.svc.UpdatedSerials(ctx, "dev-1", testPassType, "")
	require.NoError(t, err)

	f.advance(time.Minute)
	f.pusher.On("Push", mock.Anything, []string{"push-1"}).Return(push.BatchResult{
		Results: []push.Result{{Token: "push-1", Status: http.StatusOK}},
	}, nil).Once()

	res, err := f.svc.Broadcast(ctx, service.BroadcastCommand{MerchantID: "m-757", Message: "Expiring soon!"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Devices)
	assert.Equal(t, 1, res.Sent)
	f.pusher.AssertExpectations(t)

	changed, err := f.svc.UpdatedSerials(ctx, "dev-1", testPassType, first.LastUpdated)
	require.NoError(t, err)
	assert.Equal(t, []string{testSerial}, changed.SerialNumbers)

	file, notModified, err := f.svc.UpdatedPass(ctx, testPassType, testSerial, authHeader(tok), time.Time{})
	require.NoError(t, err)
	assert.False(t, notModified)
	p := readPass(t, file.Data)
	assert.Equal(t, "Expiring soon!", p.WalletMessage())
	assert.Equal(t, tok, p.AuthenticationToken)
}

func TestUpdatedPassNotModified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok := installedToken(t, f)

	file, notModified, err := f.svc.UpdatedPass(ctx, testPassType, testSerial, authHeader(tok), time.Time{})
	require.NoError(t, err)
	require.False(t, notModified)

	_, notModified, err = f.svc.UpdatedPass(ctx, testPassType, testSerial, authHeader(tok), file.LastModified.Truncate(time.Second))
	require.NoError(t, err)
	assert.True(t, notModified)

	_, _, err = f.svc.UpdatedPass(ctx, testPassType, testSerial, authHeader("bad-token-00000000"), time.Time{})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

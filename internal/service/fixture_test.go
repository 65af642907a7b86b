package service_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/passkit"
	"github.com/vbncursed/vkr/wallet-service/internal/push"
	"github.com/vbncursed/vkr/wallet-service/internal/repo"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

const (
	testPassType = "pass.com.example.coupon"
	testTeam     = "TEAM123456"
	testSerial   = "HOTP-A1B2"
)

type fixedClock struct{ now *time.Time }

func (c fixedClock) Now() time.Time { return *c.now }

type seqTokens struct{ n int64 }

func (s *seqTokens) NewToken() string {
	return fmt.Sprintf("token-%016d", atomic.AddInt64(&s.n, 1))
}

type mockPusher struct{ mock.Mock }

func (m *mockPusher) Push(ctx context.Context, tokens []string) (push.BatchResult, error) {
	args := m.Called(ctx, tokens)
	return args.Get(0).(push.BatchResult), args.Error(1)
}

type fixture struct {
	svc    *service.Service
	store  *repo.MemoryStore
	pusher *mockPusher
	now    *time.Time
}

func (f *fixture) advance(d time.Duration) { *f.now = f.now.Add(d) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	store := repo.NewMemoryStore(func() time.Time { return now })

	expires := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store.PutMerchant(models.Merchant{ID: "m-757", Name: "Hot Pot 757", Address: "1042 Temple Ave"})
	store.PutUser(models.User{ID: "u-1", DisplayName: "Dana"})
	store.PutCoupon(models.Coupon{SerialNumber: testSerial, MerchantID: "m-757", UserID: "u-1", ExpiresAt: &expires})

	bundle, err := crypto.GenerateDevBundle(testPassType, testTeam)
	require.NoError(t, err)
	builder, err := passkit.NewBuilder(bundle.Identity, passkit.Assets{"icon.png": []byte("icon")})
	require.NoError(t, err)

	pusher := &mockPusher{}
	svc := service.New(store, builder, pusher, fixedClock{now: &now}, &seqTokens{}, service.Options{
		PassTypeID:    testPassType,
		TeamID:        testTeam,
		WebServiceURL: "https://wallet.example.com",
	}, zerolog.Nop())
	return &fixture{svc: svc, store: store, pusher: pusher, now: &now}
}

// readPass достаёт pass.json из архива
func readPass(t *testing.T, data []byte) models.Pass {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "pass.json" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		var p models.Pass
		require.NoError(t, json.Unmarshal(raw, &p))
		return p
	}
	t.Fatal("pass.json not found in archive")
	return models.Pass{}
}

func authHeader(token string) string { return "ApplePass " + token }

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/push"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PASS_TYPE_ID", "pass.com.example.coupon")
	t.Setenv("TEAM_ID", "TEAM123456")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("APNS_HOST", "")
	t.Setenv("APNS_CONCURRENCY", "0")
	t.Setenv("APNS_PUSH_DELAY", "")
	t.Setenv("BIND", "")
	t.Setenv("WEB_SERVICE_URL", "")

	cfg := Load()
	assert.Equal(t, ":8081", cfg.Bind)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, push.HostProduction, cfg.APNs.Host)
	assert.Equal(t, 100*time.Millisecond, cfg.APNs.Delay)
	assert.Equal(t, 1, cfg.APNs.Concurrency)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APNS_HOST", "sandbox")
	t.Setenv("APNS_PUSH_DELAY", "250ms")
	t.Setenv("APNS_CONCURRENCY", "4")
	t.Setenv("WEB_SERVICE_URL", "https://wallet.example.com/")
	t.Setenv("ENABLE_SWAGGER", "yes")
	t.Setenv("RATE_LIMIT_CAPACITY", "-3")

	cfg := Load()
	assert.Equal(t, push.HostSandbox, cfg.APNs.Host)
	assert.Equal(t, 250*time.Millisecond, cfg.APNs.Delay)
	assert.Equal(t, 4, cfg.APNs.Concurrency)
	assert.Equal(t, "https://wallet.example.com", cfg.WebServiceURL)
	assert.True(t, cfg.EnableSwagger)
	assert.Equal(t, 1, cfg.RateLimit.Capacity)
	assert.GreaterOrEqual(t, cfg.RateLimit.TTL, 5*cfg.RateLimit.RefillInterval)
}

func TestAPNsHostOverrideURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:9999", apnsHost("http://127.0.0.1:9999/"))
}

func TestValidate(t *testing.T) {
	err := Config{StoreDriver: "mysql", WebServiceURL: "http://wallet.example.com"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PASS_TYPE_ID")
	assert.Contains(t, err.Error(), "TEAM_ID")
	assert.Contains(t, err.Error(), "STORE_DRIVER")
	assert.Contains(t, err.Error(), "https")
}

func TestEnvBoolFallsBackOnGarbage(t *testing.T) {
	t.Setenv("X_FLAG", "maybe")
	assert.True(t, envBool("X_FLAG", true))
	t.Setenv("X_FLAG", "off")
	assert.False(t, envBool("X_FLAG", true))
}

func TestLoadStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
organization_name: Coupon Club
background_color: rgb(0,0,0)
terms: One coupon per visit.
`), 0o600))

	st, err := LoadStyle(path)
	require.NoError(t, err)
	assert.Equal(t, "Coupon Club", st.OrganizationName)
	assert.Equal(t, "rgb(0,0,0)", st.BackgroundColor)
	assert.Equal(t, "One coupon per visit.", st.Terms)

	empty, err := LoadStyle("")
	require.NoError(t, err)
	assert.Empty(t, empty.OrganizationName)

	_, err = LoadStyle(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSigningIdentity(t *testing.T) {
	bundle, err := crypto.GenerateDevBundle("pass.com.example.coupon", "TEAM123456")
	require.NoError(t, err)

	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(keyPath, bundle.KeyPEM, 0o600))

	id, err := SigningConfig{
		CertPEM: string(bundle.CertPEM),
		KeyPEM:  "@" + keyPath,
		WWDRPEM: string(bundle.WWDRPEM),
	}.Identity()
	require.NoError(t, err)
	assert.True(t, id.Complete())

	_, err = SigningConfig{}.Identity()
	assert.True(t, errors.Is(err, crypto.ErrMissing))
}

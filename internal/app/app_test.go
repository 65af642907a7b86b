package app

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/passkit"
	"github.com/vbncursed/vkr/wallet-service/internal/repo"
)

func memoryConfig(t *testing.T) config.Config {
	return config.Config{
		StoreDriver: config.StoreMemory,
		PassTypeID:  "pass.com.example.coupon",
		TeamID:      "TEAM123456",
		AssetsDir:   t.TempDir(),
	}
}

func TestNewMemoryDevMode(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.DevSigning = true

	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	file, err := a.Service.GeneratePass(context.Background(), repo.DemoSerial)
	require.NoError(t, err)
	assert.NotEmpty(t, file.Data)
	assert.True(t, a.Identity.Complete())
}

func TestNewWithoutSigningFails(t *testing.T) {
	_, err := New(context.Background(), memoryConfig(t), zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, passkit.ErrSigningConfigMissing))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.PassTypeID = ""
	_, err := New(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewLoggerLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, NewLogger("DEBUG").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger("nonsense").GetLevel())
}

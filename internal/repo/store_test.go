package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

func TestMintAuthTokenQueryTreatsBlankAsMissing(t *testing.T) {
	assert.Contains(t, mintAuthTokenQuery, colAuthToken+" IS NULL OR "+colAuthToken+" = ''")
	assert.Contains(t, mintAuthTokenQuery, "RETURNING "+colAuthToken)
}

func TestMemoryStoreMintsTokenForBlankCoupon(t *testing.T) {
	s, _ := seeded(t)
	s.PutCoupon(models.Coupon{SerialNumber: "BLNK-0001", MerchantID: "m-1", AuthToken: ""})

	tok, err := s.EnsureAuthToken(context.Background(), "BLNK-0001", "candidate-blank")
	require.NoError(t, err)
	assert.Equal(t, "candidate-blank", tok)

	tok, err = s.EnsureAuthToken(context.Background(), "BLNK-0001", "candidate-late")
	require.NoError(t, err)
	assert.Equal(t, "candidate-blank", tok)
}

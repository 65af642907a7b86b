package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalletMessageOnValue(t *testing.T) {
	p := Pass{Coupon: &Structure{BackFields: []Field{
		{Key: "terms", Value: "One per visit"},
		{Key: FieldKeyWalletMessage, Value: "Expiring soon!"},
	}}}
	assert.Equal(t, "Expiring soon!", p.WalletMessage())
	assert.Equal(t, "", Pass{}.WalletMessage())
}

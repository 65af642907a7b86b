package dto

import (
	"errors"
	"strings"
)

var (
	ErrCouponCodeRequired = errors.New("couponCode required")
	ErrMerchantRequired   = errors.New("merchantId required")
	ErrMessageTooLong     = errors.New("message too long")
)

// MaxMessageLen — предел для текста на обороте пасса
const MaxMessageLen = 500

func (r GenerateRequest) Validate() error {
	if strings.TrimSpace(r.CouponCode) == "" {
		return ErrCouponCodeRequired
	}
	return nil
}

func (r BroadcastRequest) Validate() error {
	if strings.TrimSpace(r.MerchantID) == "" {
		return ErrMerchantRequired
	}
	if len([]rune(r.Message)) > MaxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}

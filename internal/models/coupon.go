package models

import "time"

// Coupon — запись купона во внешнем хранилище; serial совпадает с кодом погашения
type Coupon struct {
	SerialNumber string
	MerchantID   string
	UserID       string
	OfferText    string
	ExpiresAt    *time.Time
	AuthToken    string
	UpdatedAt    time.Time
}

// Merchant — данные мерчанта; Content хранит произвольный вложенный JSON из админки
type Merchant struct {
	ID              string
	Name            string
	Offer           string
	Address         string
	Latitude        *float64
	Longitude       *float64
	BrandColor      string
	Content         map[string]any
	WalletMessage   string
	WalletExpiresAt *time.Time
	UpdatedAt       time.Time
}

type User struct {
	ID          string
	DisplayName string
}

// CouponBundle — купон вместе с присоединёнными мерчантом и пользователем (могут отсутствовать)
type CouponBundle struct {
	Coupon   Coupon
	Merchant *Merchant
	User     *User
}

// LastUpdated — момент последнего изменения, влияющего на содержимое пасса
func (b CouponBundle) LastUpdated() time.Time {
	t := b.Coupon.UpdatedAt
	if b.Merchant != nil && b.Merchant.UpdatedAt.After(t) {
		t = b.Merchant.UpdatedAt
	}
	return t.UTC()
}

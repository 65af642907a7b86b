package dto

import "time"

// RegisterRequest — тело регистрации устройства от Wallet
type RegisterRequest struct {
	PushToken string `json:"pushToken"`
}

// SerialsResponse — ответ на опрос изменённых пассов
type SerialsResponse struct {
	LastUpdated   string   `json:"lastUpdated"`
	SerialNumbers []string `json:"serialNumbers"`
}

// LogRequest — сообщения об ошибках, которые Wallet присылает сам
type LogRequest struct {
	Logs []string `json:"logs"`
}

type GenerateRequest struct {
	CouponCode string `json:"couponCode"`
}

type BroadcastRequest struct {
	MerchantID string     `json:"merchantId"`
	Message    string     `json:"message"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

type BroadcastResponse struct {
	MerchantID   string `json:"merchantId"`
	Devices      int    `json:"devices"`
	Sent         int    `json:"sent"`
	Failed       int    `json:"failed"`
	Unregistered int    `json:"unregistered"`
}

// Package queue — рассылки мерчантов через RabbitMQ
package queue

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// BroadcastQueue — durable очередь, из которой читает сервис
const BroadcastQueue = "wallet.broadcast"

// BroadcastEvent публикуется платформой, когда мерчант меняет сообщение или срок купонов
type BroadcastEvent struct {
	MerchantID string     `json:"merchant_id"`
	Message    string     `json:"message"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// Decode разбирает тело сообщения в команду рассылки
func Decode(body []byte) (service.BroadcastCommand, error) {
	var ev BroadcastEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return service.BroadcastCommand{}, fmt.Errorf("unmarshal: %w", err)
	}
	if strings.TrimSpace(ev.MerchantID) == "" {
		return service.BroadcastCommand{}, fmt.Errorf("merchant_id: %w", service.ErrInvalidRequest)
	}
	return service.BroadcastCommand{MerchantID: ev.MerchantID, Message: ev.Message, ExpiresAt: ev.ExpiresAt}, nil
}

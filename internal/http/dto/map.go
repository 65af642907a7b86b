package dto

import (
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// ToCommand преобразует BroadcastRequest в команду use case
func (r BroadcastRequest) ToCommand() service.BroadcastCommand {
	return service.BroadcastCommand{MerchantID: r.MerchantID, Message: r.Message, ExpiresAt: r.ExpiresAt}
}

// FromBroadcastResult формирует ответ по результату рассылки
func FromBroadcastResult(merchantID string, r service.BroadcastResult) BroadcastResponse {
	return BroadcastResponse{
		MerchantID:   merchantID,
		Devices:      r.Devices,
		Sent:         r.Sent,
		Failed:       r.Failed,
		Unregistered: r.Unregistered,
	}
}

func FromUpdatedSerials(r service.UpdatedSerialsResult) SerialsResponse {
	return SerialsResponse{LastUpdated: r.LastUpdated, SerialNumbers: r.SerialNumbers}
}

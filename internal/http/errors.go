package http

import (
	"errors"
	"net/http"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	"github.com/vbncursed/vkr/wallet-service/internal/passkit"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// MapError переводит доменные/DTO ошибки в HTTP статус и тело APIError
func MapError(err error) (int, APIError) {
	switch {
	// DTO validation
	case errors.Is(err, dto.ErrCouponCodeRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "couponCode required"}
	case errors.Is(err, dto.ErrMerchantRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "merchantId required"}
	case errors.Is(err, dto.ErrMessageTooLong):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "message too long"}

	// Service errors
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "invalid request"}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "not found"}
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, APIError{Code: "unauthorized", Message: "unauthorized"}
	case errors.Is(err, service.ErrPushFailed):
		return http.StatusBadGateway, APIError{Code: "push_failed", Message: "push delivery failed"}
	case errors.Is(err, passkit.ErrSigningConfigMissing):
		return http.StatusServiceUnavailable, APIError{Code: "signing_unavailable", Message: "pass signing is not configured"}
	}
	return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
}

// deviceStatus — тот же маппинг для маршрутов Wallet, которые отвечают голым статусом
func deviceStatus(err error) int {
	status, _ := MapError(err)
	return status
}

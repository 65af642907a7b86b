package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// broadcastTimeout покрывает запись и целый батч пушей
const broadcastTimeout = 2 * time.Minute

// Internal — маршруты /wallet для платформы купонов
type Internal struct {
	svc    *service.Service
	logger zerolog.Logger
}

func NewInternal(svc *service.Service, logger zerolog.Logger) *Internal {
	return &Internal{svc: svc, logger: logger.With().Str("component", "internal-api").Logger()}
}

func (h *Internal) fail(c echo.Context, err error) error {
	if !service.IsClientError(err) {
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return writeError(c, err)
}

// GenerateGet — пасс по коду купона из query
// @Summary     Generate pass
// @Tags        passes
// @Produce     application/vnd.apple.pkpass
// @Param       code query string true "Coupon code (serial number)"
// @Success     200
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Failure     503 {object} APIError
// @Security    BearerAuth
// @Router      /wallet/generate [get]
func (h *Internal) GenerateGet(c echo.Context) error {
	return h.generate(c, dto.GenerateRequest{CouponCode: c.QueryParam("code")})
}

// GeneratePost — пасс по коду купона из тела
// @Summary     Generate pass
// @Tags        passes
// @Accept      json
// @Produce     application/vnd.apple.pkpass
// @Param       request body dto.GenerateRequest true "Coupon code"
// @Success     200
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Failure     503 {object} APIError
// @Security    BearerAuth
// @Router      /wallet/generate [post]
func (h *Internal) GeneratePost(c echo.Context) error {
	var req dto.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return writeJSON(c, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "malformed"})
	}
	return h.generate(c, req)
}

func (h *Internal) generate(c echo.Context, req dto.GenerateRequest) error {
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()
	file, err := h.svc.GeneratePass(ctx, strings.TrimSpace(req.CouponCode))
	if err != nil {
		return h.fail(c, err)
	}
	return writePass(c, file.Data, file.LastModified.UTC().Format(http.TimeFormat), "coupon-"+file.SerialNumber+".pkpass")
}

// Broadcast — новое сообщение мерчанта и пуш всем его устройствам
// @Summary     Broadcast merchant message
// @Tags        passes
// @Accept      json
// @Produce     json
// @Param       request body dto.BroadcastRequest true "Broadcast"
// @Success     200 {object} dto.BroadcastResponse
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Failure     502 {object} APIError
// @Security    BearerAuth
// @Router      /wallet/broadcast [post]
func (h *Internal) Broadcast(c echo.Context) error {
	var req dto.BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return writeJSON(c, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "malformed"})
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), broadcastTimeout)
	defer cancel()
	res, err := h.svc.Broadcast(ctx, req.ToCommand())
	if err != nil {
		if !errors.Is(err, service.ErrPushFailed) {
			return h.fail(c, err)
		}
		h.logger.Error().Err(err).Str("merchant_id", req.MerchantID).Msg("broadcast push failed")
		return writeJSON(c, http.StatusBadGateway, APIError{
			Code:    "push_failed",
			Message: "message stored, push delivery failed",
			Details: dto.FromBroadcastResult(req.MerchantID, res),
		})
	}
	return writeJSON(c, http.StatusOK, dto.FromBroadcastResult(req.MerchantID, res))
}

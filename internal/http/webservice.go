package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	"github.com/vbncursed/vkr/wallet-service/internal/passkit"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

const (
	passContentType = passkit.ContentType
	storeTimeout    = 5 * time.Second
)

// WebService — маршруты, которые вызывает Wallet на устройстве.
// Ошибки отдаются голым статусом без тела.
type WebService struct {
	svc    *service.Service
	logger zerolog.Logger
}

func NewWebService(svc *service.Service, logger zerolog.Logger) *WebService {
	return &WebService{svc: svc, logger: logger.With().Str("component", "webservice").Logger()}
}

func (w *WebService) fail(c echo.Context, err error) error {
	status := deviceStatus(err)
	if status >= http.StatusInternalServerError {
		w.logger.Error().Err(err).Str("path", c.Path()).Msg("device request failed")
	}
	return c.NoContent(status)
}

// Register — регистрация устройства для обновлений пасса
// @Summary     Register device
// @Tags        wallet
// @Accept      json
// @Param       deviceId   path   string              true "Device library identifier"
// @Param       passTypeId path   string              true "Pass type identifier"
// @Param       serial     path   string              true "Serial number"
// @Param       Authorization header string           true "ApplePass <token>"
// @Param       request    body   dto.RegisterRequest true "Push token"
// @Success     201
// @Success     200
// @Failure     400
// @Failure     401
// @Failure     404
// @Router      /v1/devices/{deviceId}/registrations/{passTypeId}/{serial} [post]
func (w *WebService) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()

	passTypeID, serial := c.Param("passTypeId"), c.Param("serial")
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if err := w.svc.AuthorizePass(ctx, passTypeID, serial, authHeader); err != nil {
		return w.fail(c, err)
	}
	var req dto.RegisterRequest
	if err := (DeviceJSONBinder{}).Bind(&req, c); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	created, err := w.svc.RegisterDevice(ctx, c.Param("deviceId"), passTypeID, serial, authHeader, req.PushToken)
	if err != nil {
		return w.fail(c, err)
	}
	if created {
		return c.NoContent(http.StatusCreated)
	}
	return c.NoContent(http.StatusOK)
}

// Unregister — отписка устройства
// @Summary     Unregister device
// @Tags        wallet
// @Param       deviceId   path   string true "Device library identifier"
// @Param       passTypeId path   string true "Pass type identifier"
// @Param       serial     path   string true "Serial number"
// @Param       Authorization header string true "ApplePass <token>"
// @Success     200
// @Failure     401
// @Failure     404
// @Router      /v1/devices/{deviceId}/registrations/{passTypeId}/{serial} [delete]
func (w *WebService) Unregister(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()
	err := w.svc.UnregisterDevice(ctx, c.Param("deviceId"), c.Param("passTypeId"), c.Param("serial"),
		c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return w.fail(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// UpdatedSerials — серийники пассов устройства, изменившихся после тега
// @Summary     List updated passes
// @Tags        wallet
// @Produce     json
// @Param       deviceId           path  string true  "Device library identifier"
// @Param       passTypeId         path  string true  "Pass type identifier"
// @Param       passesUpdatedSince query string false "Tag from a previous response"
// @Success     200 {object} dto.SerialsResponse
// @Success     204
// @Router      /v1/devices/{deviceId}/registrations/{passTypeId} [get]
func (w *WebService) UpdatedSerials(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()
	res, err := w.svc.UpdatedSerials(ctx, c.Param("deviceId"), c.Param("passTypeId"), c.QueryParam("passesUpdatedSince"))
	if err != nil {
		return w.fail(c, err)
	}
	if len(res.SerialNumbers) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return writeJSON(c, http.StatusOK, dto.FromUpdatedSerials(res))
}

// LatestPass — свежая версия пасса
// @Summary     Get latest pass
// @Tags        wallet
// @Produce     application/vnd.apple.pkpass
// @Param       passTypeId path   string true  "Pass type identifier"
// @Param       serial     path   string true  "Serial number"
// @Param       Authorization header string true "ApplePass <token>"
// @Param       If-Modified-Since header string false "HTTP date"
// @Success     200
// @Success     304
// @Failure     401
// @Failure     404
// @Router      /v1/passes/{passTypeId}/{serial} [get]
func (w *WebService) LatestPass(c echo.Context) error {
	var since time.Time
	if v := c.Request().Header.Get(echo.HeaderIfModifiedSince); v != "" {
		// unparseable dates are ignored
		since, _ = http.ParseTime(v)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()
	file, notModified, err := w.svc.UpdatedPass(ctx, c.Param("passTypeId"), c.Param("serial"),
		c.Request().Header.Get(echo.HeaderAuthorization), since)
	if err != nil {
		return w.fail(c, err)
	}
	lastModified := file.LastModified.UTC().Format(http.TimeFormat)
	if notModified {
		c.Response().Header().Set(echo.HeaderLastModified, lastModified)
		return c.NoContent(http.StatusNotModified)
	}
	return writePass(c, file.Data, lastModified, "")
}

// Log — журнал ошибок Wallet
// @Summary     Device log
// @Tags        wallet
// @Accept      json
// @Param       request body dto.LogRequest true "Messages"
// @Success     200
// @Router      /v1/log [post]
func (w *WebService) Log(c echo.Context) error {
	var req dto.LogRequest
	if err := (DeviceJSONBinder{}).Bind(&req, c); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	msgs := make([]string, 0, len(req.Logs))
	for _, m := range req.Logs {
		if m = strings.TrimSpace(m); m != "" {
			msgs = append(msgs, m)
		}
	}
	w.svc.DeviceLog(msgs)
	return c.NoContent(http.StatusOK)
}

package http

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const storePingTimeout = 800 * time.Millisecond

type HealthzResponse struct {
	Status string `json:"status"`
}
type ReadyzResponse struct {
	Status string `json:"status"`
}

// Healthz — процесс жив; хранилище не проверяется
// @Summary     Liveness probe
// @Tags        meta
// @Produce     json
// @Success     200 {object} HealthzResponse
// @Router      /healthz [get]
func Healthz(c echo.Context) error {
	return writeJSON(c, http.StatusOK, HealthzResponse{Status: "ok"})
}

// Pinger — хранилище с ping (memstore или pgx)
type Pinger interface {
	Ping(ctx context.Context) error
}

// Readyz — готовность: хранилище отвечает на ping за storePingTimeout
// @Summary     Readiness probe
// @Tags        meta
// @Produce     json
// @Success     200 {object} ReadyzResponse
// @Failure     503 {object} APIError
// @Router      /readyz [get]
func Readyz(store Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), storePingTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeJSON(c, http.StatusServiceUnavailable, APIError{Code: "store_not_ready", Message: "store not ready"})
		}
		return writeJSON(c, http.StatusOK, ReadyzResponse{Status: "ready"})
	}
}

// StrictJSONBinder — для внутреннего API платформы: только JSON, неизвестные поля запрещены
type StrictJSONBinder struct{}

func (StrictJSONBinder) Bind(i interface{}, c echo.Context) error {
	return decodeJSON(c, i, true)
}

// DeviceJSONBinder — для запросов Wallet: лишние поля от новых версий iOS игнорируются
type DeviceJSONBinder struct{}

func (DeviceJSONBinder) Bind(i interface{}, c echo.Context) error {
	return decodeJSON(c, i, false)
}

func decodeJSON(c echo.Context, i interface{}, strict bool) error {
	if ct := c.Request().Header.Get(echo.HeaderContentType); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != echo.MIMEApplicationJSON {
			return echo.ErrUnsupportedMediaType
		}
	}
	dec := json.NewDecoder(c.Request().Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(i)
}

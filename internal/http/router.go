package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/vbncursed/vkr/wallet-service/internal/config"
	mw "github.com/vbncursed/vkr/wallet-service/internal/middleware"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// Deps — всё, что нужно роутеру; Redis может быть nil
type Deps struct {
	Service *service.Service
	Store   Pinger
	Redis   redis.Scripter
	Config  config.Config
	Logger  zerolog.Logger
}

func Router(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(mw.RequestLogger(d.Logger))
	e.Binder = StrictJSONBinder{}
	e.HTTPErrorHandler = DefaultHTTPErrorHandler

	// Swagger UI (включается флагом ENABLE_SWAGGER=1)
	if d.Config.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	e.GET("/healthz", Healthz)
	e.GET("/readyz", Readyz(d.Store))

	// Apple Wallet Web Service
	ws := NewWebService(d.Service, d.Logger)
	v1 := e.Group("/v1", mw.RateLimit(d.Config.RateLimit, d.Redis, d.Logger))
	v1.POST("/devices/:deviceId/registrations/:passTypeId/:serial", ws.Register)
	v1.DELETE("/devices/:deviceId/registrations/:passTypeId/:serial", ws.Unregister)
	v1.GET("/devices/:deviceId/registrations/:passTypeId", ws.UpdatedSerials)
	v1.GET("/passes/:passTypeId/:serial", ws.LatestPass)
	v1.POST("/log", ws.Log)

	// internal API of the coupon platform
	in := NewInternal(d.Service, d.Logger)
	wallet := e.Group("/wallet", mw.ServiceAuth(d.Config.InternalJWTSecret))
	wallet.GET("/generate", in.GenerateGet)
	wallet.POST("/generate", in.GeneratePost)
	wallet.POST("/broadcast", in.Broadcast)

	return e
}

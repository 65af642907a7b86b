package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CallerKey — ключ echo.Context с subject вызывающего сервиса
const CallerKey = "caller"

// ServiceAuth проверяет Bearer JWT (HS256) на внутренних маршрутах /wallet.
// Пустой секрет отключает проверку (локальная разработка).
func ServiceAuth(secret string) echo.MiddlewareFunc {
	if secret == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"code": "unauthorized", "message": "missing bearer token"})
			}
			claims := jwt.RegisteredClaims{}
			tok, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), &claims, func(t *jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"code": "unauthorized", "message": "invalid token"})
			}
			c.Set(CallerKey, claims.Subject)
			return next(c)
		}
	}
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(c echo.Context, status int, v any) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(status, v)
}

func writeError(c echo.Context, err error) error {
	status, body := MapError(err)
	return writeJSON(c, status, body)
}

// writePass отдаёт архив .pkpass
func writePass(c echo.Context, data []byte, lastModified string, attachment string) error {
	h := c.Response().Header()
	h.Set(echo.HeaderCacheControl, "no-store")
	if lastModified != "" {
		h.Set(echo.HeaderLastModified, lastModified)
	}
	if attachment != "" {
		h.Set(echo.HeaderContentDisposition, "attachment; filename="+attachment)
	}
	return c.Blob(http.StatusOK, passContentType, data)
}

func DefaultHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); ok {
		_ = writeJSON(c, he.Code, map[string]any{
			"code":    http.StatusText(he.Code),
			"message": he.Message,
		})
		return
	}
	_ = writeJSON(c, http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"})
}

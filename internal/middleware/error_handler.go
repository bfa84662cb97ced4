package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"message": ...} JSON.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, map[string]string{"message": msg})
}

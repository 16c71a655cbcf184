package middleware

import (
	"errors"
	"net/http"

	"krishiCMS/pkg/logger"
	jsonres "krishiCMS/pkg/response"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler renders errors that escape handlers with the shared
// envelope. The raw error is only included when exposeErrors is set.
func ErrorHandler(exposeErrors bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}

		body := jsonres.Fail(message)
		if code >= http.StatusInternalServerError {
			logger.FromEcho(c).Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
			if exposeErrors {
				body = jsonres.Error(message, err.Error())
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Error("Failed to write error response", err)
		}
	}
}

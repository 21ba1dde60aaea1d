package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/web/middleware"
)

// NewHTTPErrorHandler is the last-resort handler: panics recovered by the
// middleware, bind failures, and anything a page handler did not catch.
// Service failures never reach it — the page handlers render those as
// banners in place.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "Erro interno"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprintf("%v", he.Message)
		} else {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		data := struct {
			Session domain.Session
			Code    int
			Message string
		}{middleware.SessionFrom(c), code, msg}

		if rErr := c.Render(code, "erro.html", data); rErr != nil {
			_ = c.String(code, msg)
		}
	}
}

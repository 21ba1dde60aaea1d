package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/gateway"
	"github.com/conectapg/portal/internal/web/middleware"
)

// page carries the fields every template expects. Handlers embed it in
// their page-specific data structs.
type page struct {
	Session domain.Session
	// Error is the dismissible banner for a failed service call; service
	// errors never escape past the handler that caught them.
	Error string
	Flash string
}

func newPage(c echo.Context) page {
	return page{Session: middleware.SessionFrom(c)}
}

// reqCtx returns the request context with the session's bearer token
// attached for the gateway.
func reqCtx(c echo.Context) context.Context {
	return gateway.WithToken(c.Request().Context(), middleware.SessionFrom(c).Token)
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// The guard is a UX convenience, not a security boundary: it only decides
// what the portal renders. Authorization is enforced by the backend on
// every call; a request that slips past these redirects still carries no
// capability the backend would not reject.

// RequireAuth redirects unauthenticated visitors to the login page.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !SessionFrom(c).Authenticated {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// RequireStaff redirects authenticated non-staff users to the home route.
// Runs after RequireAuth.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !SessionFrom(c).Role().IsStaff() {
			return c.Redirect(http.StatusFound, "/")
		}
		return next(c)
	}
}

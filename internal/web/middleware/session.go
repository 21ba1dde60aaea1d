package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
)

const (
	ctxSession = "session"
	ctxSID     = "sid"
)

// CookieOptions configures the session-id cookie.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// LoadSession ensures every request carries a session id cookie and loads
// the matching session into the echo context. A store failure degrades to
// the empty session instead of failing the page; the readiness probe is
// what reports the store being down.
func LoadSession(store ports.SessionStore, opts CookieOptions, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(opts.Name); err == nil && cookie.Value != "" {
				sid = cookie.Value
			}
			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     opts.Name,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(opts.TTL.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess, err := store.Load(c.Request().Context(), sid)
			if err != nil {
				log.Warn().Err(err).Msg("session load failed, treating as signed out")
				sess = domain.EmptySession()
			}

			c.Set(ctxSID, sid)
			c.Set(ctxSession, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session loaded by LoadSession, or the empty
// session when the middleware did not run.
func SessionFrom(c echo.Context) domain.Session {
	sess, _ := c.Get(ctxSession).(domain.Session)
	return sess
}

// SIDFrom returns the request's session id.
func SIDFrom(c echo.Context) string {
	sid, _ := c.Get(ctxSID).(string)
	return sid
}

// SetSession replaces the session in the echo context after a mutation so
// the same request renders with the fresh state.
func SetSession(c echo.Context, sess domain.Session) {
	c.Set(ctxSession, sess)
}

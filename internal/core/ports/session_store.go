package ports

import (
	"context"

	"github.com/conectapg/portal/internal/core/domain"
)

// SessionStore persists per-browser session state. Every mutation writes
// the full session durably; Load rehydrates it (or the empty session when
// nothing usable is stored). The guard middleware is the only reader, the
// page handlers are the only writers.
type SessionStore interface {
	Load(ctx context.Context, sid string) (domain.Session, error)
	Login(ctx context.Context, sid string, user domain.User, token string) error
	Logout(ctx context.Context, sid string) error
	// UpdateUser shallow-merges patch into the current session user,
	// leaving token and authenticated untouched. Returns
	// domain.ErrNotAuthenticated when no user is present.
	UpdateUser(ctx context.Context, sid string, patch domain.UserPatch) (domain.Session, error)
}

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/conectapg/portal/internal/core/domain"
)

const (
	keyPrefix       = "conectapg:session:"
	envelopeVersion = 1
	defaultTTL      = 30 * 24 * time.Hour
)

// envelope versions the persisted shape so a future change cannot poison
// rehydration: anything but the current version loads as the empty session.
type envelope struct {
	Version int            `json:"version"`
	Session domain.Session `json:"session"`
}

// Store implements ports.SessionStore on top of a Slot.
type Store struct {
	slot Slot
	ttl  time.Duration
	log  zerolog.Logger
}

// NewStore creates a Store. A non-positive ttl applies the 30-day default.
func NewStore(slot Slot, ttl time.Duration, log zerolog.Logger) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{slot: slot, ttl: ttl, log: log}
}

func (st *Store) key(sid string) string {
	return keyPrefix + sid
}

// Load rehydrates the session for sid. Missing keys, unknown envelope
// versions, corrupt payloads, inconsistent state, and expired JWT bearer
// tokens all come back as the empty session rather than an error; only a
// slot failure is returned as one.
func (st *Store) Load(ctx context.Context, sid string) (domain.Session, error) {
	raw, ok, err := st.slot.Get(ctx, st.key(sid))
	if err != nil {
		return domain.EmptySession(), err
	}
	if !ok {
		return domain.EmptySession(), nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != envelopeVersion {
		st.log.Warn().Str("sid", sid).Msg("discarding unreadable session envelope")
		return domain.EmptySession(), nil
	}

	s := env.Session
	// Re-derive the flag instead of trusting the stored one: the invariant
	// authenticated == (user != nil && token != "") must hold after load.
	if s.User == nil || s.Token == "" {
		return domain.EmptySession(), nil
	}
	if tokenExpired(s.Token, time.Now()) {
		st.log.Info().Str("sid", sid).Msg("session token expired, invalidating")
		return domain.EmptySession(), nil
	}
	s.Authenticated = true
	return s, nil
}

// Login unconditionally replaces the session with an authenticated one.
func (st *Store) Login(ctx context.Context, sid string, user domain.User, token string) error {
	return st.write(ctx, sid, domain.Session{User: &user, Token: token, Authenticated: true})
}

// Logout resets the session to its empty state. Idempotent.
func (st *Store) Logout(ctx context.Context, sid string) error {
	return st.write(ctx, sid, domain.EmptySession())
}

// UpdateUser shallow-merges patch into the session's cached user without
// touching token or authenticated.
func (st *Store) UpdateUser(ctx context.Context, sid string, patch domain.UserPatch) (domain.Session, error) {
	s, err := st.Load(ctx, sid)
	if err != nil {
		return domain.EmptySession(), err
	}
	if s.User == nil {
		return domain.EmptySession(), domain.ErrNotAuthenticated
	}

	merged := patch.Apply(*s.User)
	s.User = &merged
	if err := st.write(ctx, sid, s); err != nil {
		return domain.EmptySession(), err
	}
	return s, nil
}

func (st *Store) write(ctx context.Context, sid string, s domain.Session) error {
	raw, err := json.Marshal(envelope{Version: envelopeVersion, Session: s})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return st.slot.Set(ctx, st.key(sid), raw, st.ttl)
}

// tokenExpired inspects (never verifies) the bearer token. A parseable JWT
// with an exp claim in the past invalidates the session; opaque tokens and
// JWTs without exp never expire client-side. Token validity is otherwise
// entirely the backend's concern.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

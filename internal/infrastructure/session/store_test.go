package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/conectapg/portal/internal/core/domain"
)

const sid = "9f3c1a22-7e9a-4a5a-b0d4-2f6f4f40f7a1"

func testUser() domain.User {
	return domain.User{ID: 7, Nome: "Maria", Email: "maria@example.com", Tipo: domain.RoleCidadao, Ativo: true}
}

func newTestStore() (*Store, *MemorySlot) {
	slot := NewMemorySlot()
	return NewStore(slot, time.Hour, zerolog.Nop()), slot
}

func TestLoginThenLoad(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	if err := st.Login(ctx, sid, testUser(), "fake-jwt-token"); err != nil {
		t.Fatalf("login: %v", err)
	}

	s, err := st.Load(ctx, sid)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Authenticated {
		t.Fatal("expected authenticated session")
	}
	if s.User == nil || s.User.ID != 7 {
		t.Fatalf("unexpected user: %+v", s.User)
	}
	if s.Token != "fake-jwt-token" {
		t.Fatalf("unexpected token: %q", s.Token)
	}
}

func TestLoad_UnknownSID(t *testing.T) {
	st, _ := newTestStore()

	s, err := st.Load(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s != domain.EmptySession() {
		t.Fatalf("expected empty session, got %+v", s)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	if err := st.Login(ctx, sid, testUser(), "fake-jwt-token"); err != nil {
		t.Fatalf("login: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := st.Logout(ctx, sid); err != nil {
			t.Fatalf("logout #%d: %v", i+1, err)
		}
	}

	s, err := st.Load(ctx, sid)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Authenticated || s.User != nil || s.Token != "" {
		t.Fatalf("expected empty session after logout, got %+v", s)
	}
}

func TestUpdateUser(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	if err := st.Login(ctx, sid, testUser(), "fake-jwt-token"); err != nil {
		t.Fatalf("login: %v", err)
	}

	nome := "Maria Souza"
	s, err := st.UpdateUser(ctx, sid, domain.UserPatch{Nome: &nome})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if s.User.Nome != "Maria Souza" {
		t.Fatalf("expected patched name, got %q", s.User.Nome)
	}
	if s.User.Email != "maria@example.com" || s.User.ID != 7 {
		t.Fatalf("expected other fields untouched, got %+v", s.User)
	}
	if !s.Authenticated || s.Token != "fake-jwt-token" {
		t.Fatalf("expected token and flag untouched, got %+v", s)
	}

	reloaded, err := st.Load(ctx, sid)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.User.Nome != "Maria Souza" {
		t.Fatalf("expected patch persisted, got %q", reloaded.User.Nome)
	}
}

func TestUpdateUser_NotAuthenticated(t *testing.T) {
	st, _ := newTestStore()

	nome := "Maria"
	_, err := st.UpdateUser(context.Background(), sid, domain.UserPatch{Nome: &nome})
	if err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestLoad_WrongEnvelopeVersion(t *testing.T) {
	st, slot := newTestStore()
	ctx := context.Background()

	payload := []byte(`{"version":99,"session":{"user":{"id":7},"token":"fake-jwt-token","authenticated":true}}`)
	if err := slot.Set(ctx, keyPrefix+sid, payload, time.Hour); err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	s, err := st.Load(ctx, sid)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s != domain.EmptySession() {
		t.Fatalf("expected empty session for unknown version, got %+v", s)
	}
}

func TestLoad_CorruptPayload(t *testing.T) {
	st, slot := newTestStore()
	ctx := context.Background()

	if err := slot.Set(ctx, keyPrefix+sid, []byte("{not json"), time.Hour); err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	s, err := st.Load(ctx, sid)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s != domain.EmptySession() {
		t.Fatalf("expected empty session for corrupt payload, got %+v", s)
	}
}

func TestLoad_InconsistentState(t *testing.T) {
	st, slot := newTestStore()
	ctx := context.Background()

	// Authenticated flag set but no token stored. The flag must be
	// re-derived, never trusted.
	payload := []byte(`{"version":1,"session":{"user":{"id":7},"token":"","authenticated":true}}`)
	if err := slot.Set(ctx, keyPrefix+sid, payload, time.Hour); err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	s, err := st.Load(ctx, sid)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Authenticated || s.User != nil {
		t.Fatalf("expected empty session, got %+v", s)
	}
}

func TestLoad_ExpiredJWT(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if err := st.Login(ctx, sid, testUser(), token); err != nil {
		t.Fatalf("login: %v", err)
	}

	s, err := st.Load(ctx, sid)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Authenticated {
		t.Fatal("expected expired token to invalidate the session")
	}
}

func TestLoad_FutureJWTSurvives(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	valid := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := valid.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if err := st.Login(ctx, sid, testUser(), token); err != nil {
		t.Fatalf("login: %v", err)
	}
	s, err := st.Load(ctx, sid)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Authenticated {
		t.Fatal("expected unexpired token to keep the session")
	}
}

func TestLoad_OpaqueTokenNeverExpires(t *testing.T) {
	st, _ := newTestStore()
	ctx := context.Background()

	if err := st.Login(ctx, sid, testUser(), "fake-jwt-token"); err != nil {
		t.Fatalf("login: %v", err)
	}
	s, err := st.Load(ctx, sid)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Authenticated {
		t.Fatal("expected opaque token session to survive load")
	}
}

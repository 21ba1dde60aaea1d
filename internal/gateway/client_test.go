package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zerolog.Nop())
}

func TestIncidentList_FilterQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"titulo":"Poste queimado","status":"ABERTA","tipo":"ILUMINACAO"}]`))
	})

	incidents, err := c.Incidents.List(context.Background(), ports.ListFilter{Status: domain.StatusAberta})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "status=ABERTA" {
		t.Fatalf("expected only the status parameter, got %q", gotQuery)
	}
	if len(incidents) != 1 || incidents[0].ID != 1 {
		t.Fatalf("unexpected result: %+v", incidents)
	}
}

func TestIncidentList_EmptyFilterSendsNoQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})

	if _, err := c.Incidents.List(context.Background(), ports.ListFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected no query string, got %q", gotQuery)
	}
}

func TestBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	ctx := WithToken(context.Background(), "fake-jwt-token")
	if _, err := c.Incidents.List(ctx, ports.ListFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer fake-jwt-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	if _, err := c.Incidents.List(context.Background(), ports.ListFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestErrorEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Email já cadastrado"}`))
	})

	_, err := c.Users.Create(context.Background(), ports.RegisterInput{Nome: "João", Email: "joao@example.com", Senha: "123456"})
	var re *domain.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if re.StatusCode != http.StatusConflict || re.Message != "Email já cadastrado" {
		t.Fatalf("unexpected error: %+v", re)
	}
}

func TestErrorWithoutMessageBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Incidents.Get(context.Background(), 5)
	var re *domain.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if re.Message != "" {
		t.Fatalf("expected empty message for fallback substitution, got %q", re.Message)
	}
}

func TestNotFoundSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Incidents.Get(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIncidentCreate_Body(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ocorrencias" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42,"titulo":"Buraco na avenida","status":"ABERTA"}`))
	})

	created, err := c.Incidents.Create(context.Background(), ports.CreateIncidentInput{
		Titulo:      "Buraco na avenida",
		Descricao:   "Buraco grande na faixa da direita",
		Localizacao: "Av. Brasil, 100",
		Tipo:        domain.TipoBuraco,
		UsuarioID:   7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("unexpected incident: %+v", created)
	}
	if got["usuarioId"] != float64(7) {
		t.Fatalf("expected usuarioId in body, got %v", got)
	}
	if _, ok := got["status"]; ok {
		t.Fatal("create body must not carry a status field")
	}
}

func TestIncidentUpdateStatus_QueryParam(t *testing.T) {
	var gotMethod, gotPath, gotStatus string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotStatus = r.URL.Query().Get("status")
		_, _ = w.Write([]byte(`{"id":3,"status":"EM_ANDAMENTO"}`))
	})

	updated, err := c.Incidents.UpdateStatus(context.Background(), 3, domain.StatusEmAndamento)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/ocorrencias/3/status" || gotStatus != "EM_ANDAMENTO" {
		t.Fatalf("unexpected request: %s %s?status=%s", gotMethod, gotPath, gotStatus)
	}
	if updated.Status != domain.StatusEmAndamento {
		t.Fatalf("unexpected incident: %+v", updated)
	}
}

func TestIncidentDelete(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.Incidents.Delete(context.Background(), 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/ocorrencias/8" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestUserFindByEmail_EscapesPath(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"id":7,"email":"maria+pg@example.com"}`))
	})

	user, err := c.Users.FindByEmail(context.Background(), "maria+pg@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if gotPath != "/usuarios/email/maria+pg@example.com" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := New(srv.URL, time.Second, zerolog.Nop())

	_, err := c.Incidents.List(context.Background(), ports.ListFilter{})
	var re *domain.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if re.StatusCode != 0 {
		t.Fatalf("expected zero status for transport failure, got %d", re.StatusCode)
	}
}

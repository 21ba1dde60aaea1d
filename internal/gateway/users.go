package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
)

// UserClient implements ports.UserAPI over /usuarios.
type UserClient struct {
	c *Client
}

type createUserBody struct {
	Nome  string      `json:"nome"`
	Email string      `json:"email"`
	Senha string      `json:"senha"`
	Tipo  domain.Role `json:"tipo"`
}

type updateUserBody struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

func (uc *UserClient) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := uc.c.do(ctx, http.MethodGet, "/usuarios", "/usuarios", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UserClient) Get(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := uc.c.do(ctx, http.MethodGet, "/usuarios/{id}", fmt.Sprintf("/usuarios/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByEmail resolves an account by email, the lookup behind the login
// path.
func (uc *UserClient) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var out domain.User
	path := "/usuarios/email/" + url.PathEscape(email)
	if err := uc.c.do(ctx, http.MethodGet, "/usuarios/email/{email}", path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a citizen account. The role is pinned to CIDADAO here;
// staff accounts are never created through the portal.
func (uc *UserClient) Create(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	body := createUserBody{
		Nome:  in.Nome,
		Email: in.Email,
		Senha: in.Senha,
		Tipo:  domain.RoleCidadao,
	}
	var out domain.User
	if err := uc.c.do(ctx, http.MethodPost, "/usuarios", "/usuarios", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *UserClient) Update(ctx context.Context, id int64, in ports.ProfileInput) (*domain.User, error) {
	body := updateUserBody{Nome: in.Nome, Email: in.Email}
	var out domain.User
	if err := uc.c.do(ctx, http.MethodPut, "/usuarios/{id}", fmt.Sprintf("/usuarios/%d", id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

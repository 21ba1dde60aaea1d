package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
	"github.com/conectapg/portal/internal/web/middleware"
)

// AuthHandler serves the login, logout, and registration pages.
type AuthHandler struct {
	users    ports.UserService
	sessions ports.SessionStore
	forms    *formValidator
}

func NewAuthHandler(users ports.UserService, sessions ports.SessionStore) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, forms: newFormValidator()}
}

type loginPage struct {
	page
	Form   loginForm
	Errors map[string]string
}

type registerPage struct {
	page
	Form   registerForm
	Errors map[string]string
}

// LoginPage handles GET /login. Already-signed-in visitors go home.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if middleware.SessionFrom(c).Authenticated {
		return c.Redirect(http.StatusFound, "/")
	}

	data := loginPage{page: newPage(c)}
	if c.QueryParam("cadastro") == "1" {
		data.Flash = "Conta criada com sucesso! Faça login para continuar."
	}
	return c.Render(http.StatusOK, "login.html", data)
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados inválidos")
	}

	data := loginPage{page: newPage(c), Form: form}
	if data.Errors = h.forms.Validate(form); data.Errors != nil {
		return c.Render(http.StatusUnprocessableEntity, "login.html", data)
	}

	result, err := h.users.Login(c.Request().Context(), form.Email, form.Senha)
	if err != nil {
		data.Error = err.Error()
		code := http.StatusBadGateway
		if errors.Is(err, domain.ErrInvalidCredentials) {
			code = http.StatusUnauthorized
		}
		return c.Render(code, "login.html", data)
	}

	if err := h.sessions.Login(c.Request().Context(), middleware.SIDFrom(c), result.User, result.Token); err != nil {
		data.Error = "Erro ao iniciar sessão"
		return c.Render(http.StatusInternalServerError, "login.html", data)
	}

	return c.Redirect(http.StatusFound, "/")
}

// Logout handles GET /logout. Idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), middleware.SIDFrom(c)); err != nil {
		// The cookie still points at whatever state is stored; the next
		// load decides. Nothing useful to show the user here.
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// RegisterPage handles GET /registro.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	if middleware.SessionFrom(c).Authenticated {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "registro.html", registerPage{page: newPage(c)})
}

// Register handles POST /registro, creating a citizen account.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados inválidos")
	}

	data := registerPage{page: newPage(c), Form: form}
	if data.Errors = h.forms.Validate(form); data.Errors != nil {
		return c.Render(http.StatusUnprocessableEntity, "registro.html", data)
	}

	_, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Nome:  form.Nome,
		Email: form.Email,
		Senha: form.Senha,
	})
	if err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadGateway, "registro.html", data)
	}

	return c.Redirect(http.StatusFound, "/login?cadastro=1")
}

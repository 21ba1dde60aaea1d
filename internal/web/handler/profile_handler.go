package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
	"github.com/conectapg/portal/internal/web/middleware"
)

// ProfileHandler serves the signed-in user's profile page. A successful
// save goes to the backend first, then merges into the cached session user
// so the navbar and subsequent pages see the fresh data immediately.
type ProfileHandler struct {
	users    ports.UserService
	sessions ports.SessionStore
	forms    *formValidator
}

func NewProfileHandler(users ports.UserService, sessions ports.SessionStore) *ProfileHandler {
	return &ProfileHandler{users: users, sessions: sessions, forms: newFormValidator()}
}

type profilePage struct {
	page
	Form   profileForm
	Errors map[string]string
}

// ProfilePage handles GET /perfil.
func (h *ProfileHandler) ProfilePage(c echo.Context) error {
	user := middleware.SessionFrom(c).User
	return c.Render(http.StatusOK, "perfil.html", profilePage{
		page: newPage(c),
		Form: profileForm{Nome: user.Nome, Email: user.Email},
	})
}

// Update handles POST /perfil.
func (h *ProfileHandler) Update(c echo.Context) error {
	var form profileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados inválidos")
	}

	data := profilePage{page: newPage(c), Form: form}
	if data.Errors = h.forms.Validate(form); data.Errors != nil {
		return c.Render(http.StatusUnprocessableEntity, "perfil.html", data)
	}

	sess := middleware.SessionFrom(c)
	updated, err := h.users.UpdateProfile(reqCtx(c), sess.User.ID, ports.ProfileInput{
		Nome:  form.Nome,
		Email: form.Email,
	})
	if err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadGateway, "perfil.html", data)
	}

	fresh, err := h.sessions.UpdateUser(c.Request().Context(), middleware.SIDFrom(c), domain.UserPatch{
		Nome:  &updated.Nome,
		Email: &updated.Email,
	})
	if err != nil {
		// The backend accepted the change; only the cached copy is stale.
		data.Error = "Perfil salvo, mas a sessão não pôde ser atualizada"
		return c.Render(http.StatusOK, "perfil.html", data)
	}

	middleware.SetSession(c, fresh)
	data.page = newPage(c)
	data.Flash = "Perfil atualizado com sucesso!"
	return c.Render(http.StatusOK, "perfil.html", data)
}

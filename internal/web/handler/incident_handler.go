package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
	"github.com/conectapg/portal/internal/web/middleware"
)

// IncidentHandler serves the incident list, creation, and detail pages.
type IncidentHandler struct {
	incidents ports.IncidentService
	forms     *formValidator
}

func NewIncidentHandler(incidents ports.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidents: incidents, forms: newFormValidator()}
}

type listPage struct {
	page
	Incidents   []domain.Incident
	Filter      ports.ListFilter
	AllStatuses []domain.IncidentStatus
	AllTypes    []domain.IncidentType
}

type newIncidentPage struct {
	page
	Form     incidentForm
	Errors   map[string]string
	AllTypes []domain.IncidentType
}

type detailPage struct {
	page
	Incident     *domain.Incident
	NextStatuses []domain.IncidentStatus
}

type errorPage struct {
	page
	Code    int
	Message string
}

// List handles GET / and GET /ocorrencias. Unknown filter values fall back
// to "all" rather than producing a backend error.
func (h *IncidentHandler) List(c echo.Context) error {
	filter := ports.ListFilter{}
	if s := domain.IncidentStatus(c.QueryParam("status")); s.Valid() {
		filter.Status = s
	}
	if t := domain.IncidentType(c.QueryParam("tipo")); validTipo(t) {
		filter.Tipo = t
	}

	data := listPage{
		page:        newPage(c),
		Filter:      filter,
		AllStatuses: domain.AllStatuses,
		AllTypes:    domain.AllTypes,
	}
	if c.QueryParam("criada") == "1" {
		data.Flash = "Ocorrência criada com sucesso!"
	}

	incidents, err := h.incidents.ListAll(reqCtx(c), filter)
	if err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadGateway, "ocorrencias.html", data)
	}

	data.Incidents = incidents
	return c.Render(http.StatusOK, "ocorrencias.html", data)
}

// NewPage handles GET /ocorrencias/nova.
func (h *IncidentHandler) NewPage(c echo.Context) error {
	return c.Render(http.StatusOK, "nova.html", newIncidentPage{
		page:     newPage(c),
		AllTypes: domain.AllTypes,
	})
}

// Create handles POST /ocorrencias/nova. The reporter is always the session
// user; the status field is never sent (the backend opens new incidents as
// ABERTA).
func (h *IncidentHandler) Create(c echo.Context) error {
	var form incidentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados inválidos")
	}

	data := newIncidentPage{page: newPage(c), Form: form, AllTypes: domain.AllTypes}
	if data.Errors = h.forms.Validate(form); data.Errors != nil {
		return c.Render(http.StatusUnprocessableEntity, "nova.html", data)
	}

	sess := middleware.SessionFrom(c)
	_, err := h.incidents.Create(reqCtx(c), ports.CreateIncidentInput{
		Titulo:      form.Titulo,
		Descricao:   form.Descricao,
		Localizacao: form.Localizacao,
		Tipo:        domain.IncidentType(form.Tipo),
		UsuarioID:   sess.User.ID,
	})
	if err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadGateway, "nova.html", data)
	}

	return c.Redirect(http.StatusFound, "/ocorrencias?criada=1")
}

// Detail handles GET /ocorrencias/:id.
func (h *IncidentHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Render(http.StatusNotFound, "erro.html", errorPage{
			page: newPage(c), Code: http.StatusNotFound, Message: "Ocorrência não encontrada",
		})
	}

	incident, err := h.incidents.GetByID(reqCtx(c), id)
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, domain.ErrNotFound) {
			code = http.StatusNotFound
		}
		return c.Render(code, "erro.html", errorPage{
			page: newPage(c), Code: code, Message: err.Error(),
		})
	}

	data := detailPage{
		page:         newPage(c),
		Incident:     incident,
		NextStatuses: incident.Status.NextStatuses(),
	}
	if c.QueryParam("atualizada") == "1" {
		data.Flash = "Status atualizado com sucesso!"
	}
	return c.Render(http.StatusOK, "detalhe.html", data)
}

// UpdateStatus handles POST /ocorrencias/:id/status (staff only, enforced
// by the route guard).
func (h *IncidentHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Redirect(http.StatusFound, "/ocorrencias")
	}

	next := domain.IncidentStatus(c.FormValue("status"))
	if _, err := h.incidents.UpdateStatus(reqCtx(c), id, next); err != nil {
		return h.renderDetailError(c, id, err)
	}

	return c.Redirect(http.StatusFound, fmt.Sprintf("/ocorrencias/%d?atualizada=1", id))
}

// renderDetailError re-renders the detail page with the failure banner, so
// a rejected transition keeps the user on the incident they were looking at.
func (h *IncidentHandler) renderDetailError(c echo.Context, id int64, cause error) error {
	incident, err := h.incidents.GetByID(reqCtx(c), id)
	if err != nil {
		return c.Render(http.StatusBadGateway, "erro.html", errorPage{
			page: newPage(c), Code: http.StatusBadGateway, Message: cause.Error(),
		})
	}

	data := detailPage{
		page:         newPage(c),
		Incident:     incident,
		NextStatuses: incident.Status.NextStatuses(),
	}
	data.Error = cause.Error()
	return c.Render(http.StatusUnprocessableEntity, "detalhe.html", data)
}

func validTipo(t domain.IncidentType) bool {
	for _, known := range domain.AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

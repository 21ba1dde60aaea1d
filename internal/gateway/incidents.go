package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
)

// IncidentClient implements ports.IncidentAPI over /ocorrencias.
type IncidentClient struct {
	c *Client
}

type createIncidentBody struct {
	Titulo      string              `json:"titulo"`
	Descricao   string              `json:"descricao"`
	Localizacao string              `json:"localizacao"`
	Tipo        domain.IncidentType `json:"tipo"`
	UsuarioID   int64               `json:"usuarioId"`
}

type updateIncidentBody struct {
	Titulo      string              `json:"titulo"`
	Descricao   string              `json:"descricao"`
	Localizacao string              `json:"localizacao"`
	Tipo        domain.IncidentType `json:"tipo"`
}

// List fetches incidents, serializing only the populated filter keys. An
// empty filter produces a request with no query string at all.
func (ic *IncidentClient) List(ctx context.Context, filter ports.ListFilter) ([]domain.Incident, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Tipo != "" {
		query.Set("tipo", string(filter.Tipo))
	}

	var out []domain.Incident
	if err := ic.c.do(ctx, http.MethodGet, "/ocorrencias", "/ocorrencias", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (ic *IncidentClient) Get(ctx context.Context, id int64) (*domain.Incident, error) {
	var out domain.Incident
	if err := ic.c.do(ctx, http.MethodGet, "/ocorrencias/{id}", fmt.Sprintf("/ocorrencias/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new incident. No status field is sent; the backend
// defaults it to ABERTA.
func (ic *IncidentClient) Create(ctx context.Context, in ports.CreateIncidentInput) (*domain.Incident, error) {
	body := createIncidentBody{
		Titulo:      in.Titulo,
		Descricao:   in.Descricao,
		Localizacao: in.Localizacao,
		Tipo:        in.Tipo,
		UsuarioID:   in.UsuarioID,
	}
	var out domain.Incident
	if err := ic.c.do(ctx, http.MethodPost, "/ocorrencias", "/ocorrencias", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ic *IncidentClient) Update(ctx context.Context, id int64, in ports.UpdateIncidentInput) (*domain.Incident, error) {
	body := updateIncidentBody{
		Titulo:      in.Titulo,
		Descricao:   in.Descricao,
		Localizacao: in.Localizacao,
		Tipo:        in.Tipo,
	}
	var out domain.Incident
	if err := ic.c.do(ctx, http.MethodPut, "/ocorrencias/{id}", fmt.Sprintf("/ocorrencias/%d", id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus patches the status through the dedicated endpoint. The new
// status travels as a query parameter, matching the backend contract.
func (ic *IncidentClient) UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) (*domain.Incident, error) {
	query := url.Values{}
	query.Set("status", string(status))

	var out domain.Incident
	if err := ic.c.do(ctx, http.MethodPatch, "/ocorrencias/{id}/status", fmt.Sprintf("/ocorrencias/%d/status", id), query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ic *IncidentClient) Delete(ctx context.Context, id int64) error {
	return ic.c.do(ctx, http.MethodDelete, "/ocorrencias/{id}", fmt.Sprintf("/ocorrencias/%d", id), nil, nil, nil)
}

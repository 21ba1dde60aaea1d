package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
	"github.com/conectapg/portal/internal/web/metrics"
)

// Operation fallback messages, shown when the backend returns no {message}
// body. These are user-facing and surfaced verbatim in page banners.
const (
	msgListFailed   = "Erro ao listar ocorrências"
	msgGetFailed    = "Erro ao buscar ocorrência"
	msgCreateFailed = "Erro ao criar ocorrência"
	msgUpdateFailed = "Erro ao atualizar ocorrência"
	msgStatusFailed = "Erro ao atualizar status"
	msgDeleteFailed = "Erro ao deletar ocorrência"
	msgStatsFailed  = "Erro ao obter estatísticas"
)

// IncidentService implements ports.IncidentService over the gateway.
type IncidentService struct {
	api ports.IncidentAPI
	log zerolog.Logger
}

func NewIncidentService(api ports.IncidentAPI, log zerolog.Logger) *IncidentService {
	return &IncidentService{api: api, log: log}
}

func (s *IncidentService) ListAll(ctx context.Context, filter ports.ListFilter) ([]domain.Incident, error) {
	incidents, err := s.api.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("list incidents failed")
		return nil, normalize(err, msgListFailed)
	}
	return incidents, nil
}

func (s *IncidentService) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	incident, err := s.api.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("get incident failed")
		return nil, normalize(err, msgGetFailed)
	}
	return incident, nil
}

func (s *IncidentService) Create(ctx context.Context, in ports.CreateIncidentInput) (*domain.Incident, error) {
	incident, err := s.api.Create(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Int64("usuario_id", in.UsuarioID).Msg("create incident failed")
		return nil, normalize(err, msgCreateFailed)
	}

	metrics.IncidentsCreatedTotal.WithLabelValues(string(in.Tipo)).Inc()
	s.log.Info().Int64("id", incident.ID).Str("tipo", string(in.Tipo)).Msg("incident created")
	return incident, nil
}

func (s *IncidentService) Update(ctx context.Context, id int64, in ports.UpdateIncidentInput) (*domain.Incident, error) {
	incident, err := s.api.Update(ctx, id, in)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("update incident failed")
		return nil, normalize(err, msgUpdateFailed)
	}
	return incident, nil
}

// UpdateStatus applies a lifecycle transition. The current status is fetched
// first and the strict client-side graph is checked before anything reaches
// the backend; the backend remains the authority on what actually commits.
func (s *IncidentService) UpdateStatus(ctx context.Context, id int64, next domain.IncidentStatus) (*domain.Incident, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: status desconhecido %q", domain.ErrInvalidTransition, next)
	}

	current, err := s.api.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("get incident for status update failed")
		return nil, normalize(err, msgStatusFailed)
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: de %s para %s", domain.ErrInvalidTransition, current.Status, next)
	}

	incident, err := s.api.UpdateStatus(ctx, id, next)
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Str("status", string(next)).Msg("status update failed")
		return nil, normalize(err, msgStatusFailed)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(current.Status), string(next)).Inc()
	s.log.Info().Int64("id", id).Str("from", string(current.Status)).Str("to", string(next)).Msg("incident status updated")
	return incident, nil
}

func (s *IncidentService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("delete incident failed")
		return normalize(err, msgDeleteFailed)
	}
	s.log.Info().Int64("id", id).Msg("incident deleted")
	return nil
}

// GetStatistics counts incidents per status over the full unfiltered list.
func (s *IncidentService) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	incidents, err := s.api.List(ctx, ports.ListFilter{})
	if err != nil {
		s.log.Error().Err(err).Msg("statistics fetch failed")
		return nil, normalize(err, msgStatsFailed)
	}

	stats := &domain.Statistics{Total: len(incidents)}
	for _, inc := range incidents {
		switch inc.Status {
		case domain.StatusAberta:
			stats.Abertas++
		case domain.StatusEmAndamento:
			stats.EmAndamento++
		case domain.StatusResolvida:
			stats.Resolvidas++
		case domain.StatusFechada:
			stats.Fechadas++
		}
	}
	return stats, nil
}

// normalize guarantees every service failure is a *domain.RequestError
// carrying either the backend message or the operation fallback, while
// keeping sentinel discrimination (errors.Is on ErrNotFound/ErrForbidden)
// intact through the status code.
func normalize(err error, fallback string) error {
	var re *domain.RequestError
	if errors.As(err, &re) {
		if re.Message == "" {
			return &domain.RequestError{StatusCode: re.StatusCode, Message: fallback}
		}
		return re
	}
	return &domain.RequestError{Message: fallback}
}

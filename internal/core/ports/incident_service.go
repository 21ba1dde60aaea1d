package ports

import (
	"context"

	"github.com/conectapg/portal/internal/core/domain"
)

// ListFilter carries the optional query parameters for listing incidents.
// Empty fields are omitted from the request entirely (no empty-string
// parameters on the wire).
type ListFilter struct {
	Status domain.IncidentStatus
	Tipo   domain.IncidentType
}

// CreateIncidentInput carries the data for a new incident. Status is never
// sent: the backend defaults new incidents to ABERTA.
type CreateIncidentInput struct {
	Titulo      string
	Descricao   string
	Localizacao string
	Tipo        domain.IncidentType
	UsuarioID   int64
}

// UpdateIncidentInput carries a full incident update (PUT).
type UpdateIncidentInput struct {
	Titulo      string
	Descricao   string
	Localizacao string
	Tipo        domain.IncidentType
}

// IncidentAPI is the outbound gateway surface for incident endpoints.
type IncidentAPI interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Incident, error)
	Get(ctx context.Context, id int64) (*domain.Incident, error)
	Create(ctx context.Context, in CreateIncidentInput) (*domain.Incident, error)
	Update(ctx context.Context, id int64, in UpdateIncidentInput) (*domain.Incident, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) (*domain.Incident, error)
	Delete(ctx context.Context, id int64) error
}

// IncidentService defines the use-case operations behind the incident pages.
type IncidentService interface {
	ListAll(ctx context.Context, filter ListFilter) ([]domain.Incident, error)
	GetByID(ctx context.Context, id int64) (*domain.Incident, error)
	Create(ctx context.Context, in CreateIncidentInput) (*domain.Incident, error)
	Update(ctx context.Context, id int64, in UpdateIncidentInput) (*domain.Incident, error)
	// UpdateStatus validates the transition against the client-side graph
	// before calling the backend; the backend remains authoritative.
	UpdateStatus(ctx context.Context, id int64, next domain.IncidentStatus) (*domain.Incident, error)
	Delete(ctx context.Context, id int64) error
	// GetStatistics derives the per-status breakdown from the full
	// unfiltered list. O(n) on every dashboard load; acceptable at the
	// portal's scale since the backend offers no aggregate endpoint.
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}

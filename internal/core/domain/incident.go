package domain

import "time"

// IncidentStatus is the lifecycle state of an incident, using the backend's
// wire values.
type IncidentStatus string

const (
	StatusAberta      IncidentStatus = "ABERTA"
	StatusEmAndamento IncidentStatus = "EM_ANDAMENTO"
	StatusResolvida   IncidentStatus = "RESOLVIDA"
	StatusFechada     IncidentStatus = "FECHADA"
)

// AllStatuses lists every status in lifecycle order, for filter dropdowns.
var AllStatuses = []IncidentStatus{
	StatusAberta,
	StatusEmAndamento,
	StatusResolvida,
	StatusFechada,
}

// validTransitions is the strict forward-only lifecycle graph. FECHADA is
// terminal; skipping and reversal are not allowed.
var validTransitions = map[IncidentStatus][]IncidentStatus{
	StatusAberta:      {StatusEmAndamento},
	StatusEmAndamento: {StatusResolvida},
	StatusResolvida:   {StatusFechada},
	StatusFechada:     {},
}

// Valid reports whether s is a known status.
func (s IncidentStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s IncidentStatus) CanTransitionTo(next IncidentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s in one step.
func (s IncidentStatus) NextStatuses() []IncidentStatus {
	return validTransitions[s]
}

// IncidentType is the incident category, using the backend's wire values.
type IncidentType string

const (
	TipoIluminacao IncidentType = "ILUMINACAO"
	TipoBuraco     IncidentType = "BURACO"
	TipoLixo       IncidentType = "LIXO"
	TipoVandalismo IncidentType = "VANDALISMO"
	TipoOutros     IncidentType = "OUTROS"
)

// AllTypes lists every category, for form and filter dropdowns.
var AllTypes = []IncidentType{
	TipoIluminacao,
	TipoBuraco,
	TipoLixo,
	TipoVandalismo,
	TipoOutros,
}

// Incident models an occurrence as served by the backend.
type Incident struct {
	ID              int64          `json:"id"`
	Titulo          string         `json:"titulo"`
	Descricao       string         `json:"descricao"`
	Localizacao     string         `json:"localizacao"`
	Tipo            IncidentType   `json:"tipo"`
	Status          IncidentStatus `json:"status"`
	Usuario         *User          `json:"usuario,omitempty"`
	DataCriacao     time.Time      `json:"dataCriacao"`
	DataAtualizacao time.Time      `json:"dataAtualizacao,omitempty"`
}

// Statistics is the per-status breakdown shown on the dashboard.
type Statistics struct {
	Total       int
	Abertas     int
	EmAndamento int
	Resolvidas  int
	Fechadas    int
}

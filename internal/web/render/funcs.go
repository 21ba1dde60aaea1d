package render

import (
	"fmt"
	"time"

	"github.com/conectapg/portal/internal/core/domain"
)

// View helpers exposed to the templates. Labels and the date format follow
// the wording the original ConectaPG screens used.

var statusLabels = map[domain.IncidentStatus]string{
	domain.StatusAberta:      "Aberta",
	domain.StatusEmAndamento: "Em Andamento",
	domain.StatusResolvida:   "Resolvida",
	domain.StatusFechada:     "Fechada",
}

// statusColors map onto the stylesheet's badge classes.
var statusColors = map[domain.IncidentStatus]string{
	domain.StatusAberta:      "yellow",
	domain.StatusEmAndamento: "blue",
	domain.StatusResolvida:   "green",
	domain.StatusFechada:     "gray",
}

var tipoLabels = map[domain.IncidentType]string{
	domain.TipoIluminacao: "Iluminação Pública",
	domain.TipoBuraco:     "Buraco na Via",
	domain.TipoLixo:       "Lixo/Entulho",
	domain.TipoVandalismo: "Vandalismo",
	domain.TipoOutros:     "Outros",
}

func StatusLabel(s domain.IncidentStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func StatusColor(s domain.IncidentStatus) string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return "gray"
}

func TipoLabel(t domain.IncidentType) string {
	if label, ok := tipoLabels[t]; ok {
		return label
	}
	return string(t)
}

var meses = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDate renders a timestamp as "12 de março de 2026 às 14:05".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d de %s de %d às %02d:%02d",
		t.Day(), meses[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// Percent renders part/total as a one-decimal percentage, guarding the
// empty-list case.
func Percent(part, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

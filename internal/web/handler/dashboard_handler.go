package handler

import (
	"context"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/core/ports"
)

// recentLimit bounds the recent-incident list on the dashboard.
const recentLimit = 5

// DashboardHandler serves the staff dashboard.
type DashboardHandler struct {
	incidents ports.IncidentService
}

func NewDashboardHandler(incidents ports.IncidentService) *DashboardHandler {
	return &DashboardHandler{incidents: incidents}
}

type dashboardPage struct {
	page
	Stats  *domain.Statistics
	Recent []domain.Incident
}

// Painel handles GET /painel. Statistics and the recent list are fetched
// concurrently; the first failure cancels the sibling and fails the whole
// page — no partial render.
func (h *DashboardHandler) Painel(c echo.Context) error {
	ctx, cancel := context.WithCancel(reqCtx(c))
	defer cancel()

	statsCh := make(chan *domain.Statistics, 1)
	recentCh := make(chan []domain.Incident, 1)
	errCh := make(chan error, 2)

	go func() {
		stats, err := h.incidents.GetStatistics(ctx)
		if err != nil {
			cancel()
			errCh <- err
			return
		}
		statsCh <- stats
	}()

	go func() {
		incidents, err := h.incidents.ListAll(ctx, ports.ListFilter{})
		if err != nil {
			cancel()
			errCh <- err
			return
		}
		recentCh <- incidents
	}()

	data := dashboardPage{page: newPage(c)}
	var incidents []domain.Incident
	for i := 0; i < 2; i++ {
		select {
		case stats := <-statsCh:
			data.Stats = stats
		case incidents = <-recentCh:
		case err := <-errCh:
			data.Error = err.Error()
			data.Stats = nil
			return c.Render(http.StatusBadGateway, "painel.html", data)
		}
	}

	sort.SliceStable(incidents, func(i, j int) bool {
		return incidents[i].DataCriacao.After(incidents[j].DataCriacao)
	})
	if len(incidents) > recentLimit {
		incidents = incidents[:recentLimit]
	}
	data.Recent = incidents

	return c.Render(http.StatusOK, "painel.html", data)
}

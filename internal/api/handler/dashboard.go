package handler

import (
	"net/http"

	"github.com/tirehaus/arcade/internal/api/response"
	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/services/dashboard"
)

// DashboardHandler handles the read-only leaderboard endpoints
type DashboardHandler struct {
	dashboard *dashboard.Service
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Games handles GET /api/v1/games
func (h *DashboardHandler) Games(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.GamesResponse{Games: model.Games})
}

// Scores handles GET /api/v1/scores?game=&sort=&order=
func (h *DashboardHandler) Scores(w http.ResponseWriter, r *http.Request) {
	q := dashboard.Query{
		Game:  r.URL.Query().Get("game"),
		Field: dashboard.SortField(r.URL.Query().Get("sort")),
		Order: dashboard.SortOrder(r.URL.Query().Get("order")),
	}

	result, err := h.dashboard.Scores(r.Context(), q)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoresFromResult(result))
}

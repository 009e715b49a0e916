package handler

import (
	"net/http"

	"github.com/SamriddhiRoy/user-dashboard/internal/api/middleware"
	"github.com/SamriddhiRoy/user-dashboard/internal/app/service"
	"github.com/SamriddhiRoy/user-dashboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(ds *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireUser)
	r.Get("/stats", h.stats)
}

func (h *DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context(), middleware.UserFromContext(r.Context()))
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

package handler

import (
	"net/http"

	"github.com/SamriddhiRoy/user-dashboard/internal/api/middleware"
	"github.com/SamriddhiRoy/user-dashboard/internal/app/service"
	"github.com/SamriddhiRoy/user-dashboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	userService *service.UserService
}

func NewProfileHandler(us *service.UserService) *ProfileHandler {
	return &ProfileHandler{userService: us}
}

func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireUser)
	r.Put("/", h.updateProfile)
}

func (h *ProfileHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req service.ProfileInput
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user, req)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, updated)
}

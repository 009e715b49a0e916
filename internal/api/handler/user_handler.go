package handler

import (
	"net/http"

	"github.com/SamriddhiRoy/user-dashboard/internal/api/middleware"
	"github.com/SamriddhiRoy/user-dashboard/internal/app/service"
	"github.com/SamriddhiRoy/user-dashboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(us *service.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// RegisterRoutes mounts the superuser-only user directory.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireSuperuser)
	r.Get("/", h.listUsers)                 // GET /api/users
	r.Patch("/{userID}/role", h.changeRole) // PATCH /api/users/{id}/role
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) changeRole(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var req service.RoleChangeRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}

	change, err := h.userService.ChangeRole(r.Context(), actor, chi.URLParam(r, "userID"), req.Role)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, change)
}

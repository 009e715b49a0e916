package handler

import (
	"net/http"

	"github.com/SamriddhiRoy/user-dashboard/internal/api/middleware"
	"github.com/SamriddhiRoy/user-dashboard/internal/app/service"
	"github.com/SamriddhiRoy/user-dashboard/internal/common"

	"github.com/go-chi/chi/v5"
)

// AuthHandler exposes the resolved session user. Sign-in and sign-out happen
// against the identity provider directly.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireUser).Get("/me", h.me)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user, err := service.EnsureUser(middleware.UserFromContext(r.Context()))
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

package handler

import (
	"net/http"

	"github.com/SamriddhiRoy/user-dashboard/internal/api/middleware"
	"github.com/SamriddhiRoy/user-dashboard/internal/app/service"
	"github.com/SamriddhiRoy/user-dashboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(ts *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: ts}
}

func (h *TodoHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireUser)
	r.Get("/", h.listTodos)                      // GET /api/todos
	r.Post("/", h.createTodo)                    // POST /api/todos
	r.Get("/notifications", h.listNotifications) // GET /api/todos/notifications
	r.Put("/{todoID}", h.updateTodo)
	r.Patch("/{todoID}", h.patchTodo)
	r.Delete("/{todoID}", h.deleteTodo)
}

func (h *TodoHandler) listTodos(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	todos, err := h.todoService.List(r.Context(), user.ID)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) createTodo(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req service.TodoInput
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}

	todo, err := h.todoService.Create(r.Context(), user.ID, req)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) updateTodo(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req service.TodoInput
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}

	todo, err := h.todoService.Update(r.Context(), user.ID, chi.URLParam(r, "todoID"), req)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) patchTodo(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req service.TodoPatch
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}

	todo, err := h.todoService.Patch(r.Context(), user.ID, chi.URLParam(r, "todoID"), req)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if err := h.todoService.Delete(r.Context(), user.ID, chi.URLParam(r, "todoID")); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.SuccessResponse{Success: true})
}

func (h *TodoHandler) listNotifications(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	todos, err := h.todoService.Notifications(r.Context(), user.ID)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, todos)
}

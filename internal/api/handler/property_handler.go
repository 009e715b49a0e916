package handler

import (
	"net/http"
	"strconv"

	"github.com/SamriddhiRoy/user-dashboard/internal/api/middleware"
	"github.com/SamriddhiRoy/user-dashboard/internal/app/service"
	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type PropertyHandler struct {
	propertyService *service.PropertyService
}

func NewPropertyHandler(ps *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: ps}
}

func (h *PropertyHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireUser)
	r.Get("/", h.listProperties)
	r.Get("/{propertyID}", h.getProperty)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireSuperuser)
		admin.Post("/", h.createProperty)
		admin.Put("/{propertyID}", h.updateProperty)
		admin.Delete("/{propertyID}", h.deleteProperty)
	})
}

var errPropertyNotFound = common.NewError(common.ErrNotFound, "Property not found")

func propertyIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "propertyID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errPropertyNotFound
	}
	return id, nil
}

func (h *PropertyHandler) listProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	filter := model.PropertyFilter{
		PropertyType: q.Get("type"),
		Search:       q.Get("q"),
	}
	if raw := q.Get("forSale"); raw != "" {
		forSale, err := strconv.ParseBool(raw)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "forSale must be true or false")
			return
		}
		filter.ForSale = &forSale
	}

	result, err := h.propertyService.List(r.Context(), page, pageSize, filter)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *PropertyHandler) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := propertyIDParam(r)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	property, err := h.propertyService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) createProperty(w http.ResponseWriter, r *http.Request) {
	var req service.PropertyRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	property, err := h.propertyService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, property)
}

func (h *PropertyHandler) updateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := propertyIDParam(r)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	var req service.PropertyRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	property, err := h.propertyService.Update(r.Context(), id, req)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := propertyIDParam(r)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	if err := h.propertyService.Delete(r.Context(), id); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.SuccessResponse{Success: true})
}

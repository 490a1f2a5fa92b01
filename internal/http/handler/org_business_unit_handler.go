package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/service"
	"go.uber.org/zap"
)

type OrgBusinessUnitHandler struct {
	unitService *service.OrgBusinessUnitService
	logger      *zap.Logger
}

func NewOrgBusinessUnitHandler(unitService *service.OrgBusinessUnitService, logger *zap.Logger) *OrgBusinessUnitHandler {
	return &OrgBusinessUnitHandler{
		unitService: unitService,
		logger:      logger,
	}
}

// @Summary List org business units
// @Tags OrgBusinessUnits
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /org-business-units [get]
func (h *OrgBusinessUnitHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := h.unitService.List(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list org business units", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list org business units")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Create org business unit
// @Description Create an internal business unit run by a manager
// @Tags OrgBusinessUnits
// @Accept json
// @Produce json
// @Param request body domain.CreateOrgBusinessUnitRequest true "Business unit data"
// @Success 201 {object} domain.OrgBusinessUnitDTO
// @Security BearerAuth
// @Router /org-business-units [post]
func (h *OrgBusinessUnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrgBusinessUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	unit, err := h.unitService.Create(r.Context(), &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to create org business unit", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create org business unit")
		return
	}

	w.Header().Set("Location", "/api/v1/org-business-units/"+unit.ID.String())
	respondJSON(w, http.StatusCreated, unit)
}

// @Summary Get org business unit
// @Tags OrgBusinessUnits
// @Produce json
// @Param id path string true "Business unit ID"
// @Success 200 {object} domain.OrgBusinessUnitDTO
// @Security BearerAuth
// @Router /org-business-units/{id} [get]
func (h *OrgBusinessUnitHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid business unit ID: must be a valid UUID")
		return
	}

	unit, err := h.unitService.GetByID(r.Context(), id)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to get org business unit", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get org business unit")
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

// @Summary Update org business unit
// @Tags OrgBusinessUnits
// @Accept json
// @Produce json
// @Param id path string true "Business unit ID"
// @Param request body domain.UpdateOrgBusinessUnitRequest true "Business unit data"
// @Success 200 {object} domain.OrgBusinessUnitDTO
// @Security BearerAuth
// @Router /org-business-units/{id} [put]
func (h *OrgBusinessUnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid business unit ID: must be a valid UUID")
		return
	}

	var req domain.UpdateOrgBusinessUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	unit, err := h.unitService.Update(r.Context(), id, &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to update org business unit", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update org business unit")
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"github.com/sosmedia/portfolio-api/internal/service"
	"go.uber.org/zap"
)

type BrandHandler struct {
	brandService *service.BrandService
	logger       *zap.Logger
}

func NewBrandHandler(brandService *service.BrandService, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		logger:       logger,
	}
}

// @Summary List brands
// @Description List brands visible to the caller, with optional filters
// @Tags Brands
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status (active, disabled)"
// @Param agencyId query string false "Filter by agency ID"
// @Param userId query string false "Filter by owner ID"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /brands [get]
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	filters := &repository.BrandFilters{}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.EntityStatus(s)
		filters.Status = &status
	}
	if a := r.URL.Query().Get("agencyId"); a != "" {
		if id, err := uuid.Parse(a); err == nil {
			filters.AgencyID = &id
		}
	}
	if u := r.URL.Query().Get("userId"); u != "" {
		if id, err := uuid.Parse(u); err == nil {
			filters.UserID = &id
		}
	}

	result, err := h.brandService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		h.logger.Error("failed to list brands", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list brands")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Create brand
// @Description Create a brand; a default business unit is created with it
// @Tags Brands
// @Accept json
// @Produce json
// @Param request body domain.CreateBrandRequest true "Brand data"
// @Success 201 {object} domain.BrandDTO
// @Security BearerAuth
// @Router /brands [post]
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	brand, err := h.brandService.Create(r.Context(), &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to create brand", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create brand")
		return
	}

	w.Header().Set("Location", "/api/v1/brands/"+brand.ID.String())
	respondJSON(w, http.StatusCreated, brand)
}

// @Summary Get brand
// @Tags Brands
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {object} domain.BrandDTO
// @Security BearerAuth
// @Router /brands/{id} [get]
func (h *BrandHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid brand ID: must be a valid UUID")
		return
	}

	brand, err := h.brandService.GetByID(r.Context(), id)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to get brand", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get brand")
		return
	}
	respondJSON(w, http.StatusOK, brand)
}

// @Summary Update brand
// @Tags Brands
// @Accept json
// @Produce json
// @Param id path string true "Brand ID"
// @Param request body domain.UpdateBrandRequest true "Brand data"
// @Success 200 {object} domain.BrandDTO
// @Security BearerAuth
// @Router /brands/{id} [put]
func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid brand ID: must be a valid UUID")
		return
	}

	var req domain.UpdateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	brand, err := h.brandService.Update(r.Context(), id, &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to update brand", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update brand")
		return
	}
	respondJSON(w, http.StatusOK, brand)
}

// @Summary List brand business units
// @Tags Brands
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {array} domain.BrandBusinessUnitDTO
// @Security BearerAuth
// @Router /brands/{id}/business-units [get]
func (h *BrandHandler) ListBusinessUnits(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid brand ID: must be a valid UUID")
		return
	}

	units, err := h.brandService.ListBusinessUnits(r.Context(), id)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to list business units", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list business units")
		return
	}
	respondJSON(w, http.StatusOK, units)
}

// @Summary Create brand business unit
// @Tags Brands
// @Accept json
// @Produce json
// @Param id path string true "Brand ID"
// @Param request body domain.CreateBrandBusinessUnitRequest true "Business unit data"
// @Success 201 {object} domain.BrandBusinessUnitDTO
// @Security BearerAuth
// @Router /brands/{id}/business-units [post]
func (h *BrandHandler) CreateBusinessUnit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid brand ID: must be a valid UUID")
		return
	}

	var req domain.CreateBrandBusinessUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	unit, err := h.brandService.CreateBusinessUnit(r.Context(), id, &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to create business unit", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create business unit")
		return
	}

	respondJSON(w, http.StatusCreated, unit)
}

// @Summary Update brand business unit
// @Tags Brands
// @Accept json
// @Produce json
// @Param id path string true "Brand ID"
// @Param unitId path string true "Business unit ID"
// @Param request body domain.UpdateBrandBusinessUnitRequest true "Business unit data"
// @Success 200 {object} domain.BrandBusinessUnitDTO
// @Security BearerAuth
// @Router /brands/{id}/business-units/{unitId} [put]
func (h *BrandHandler) UpdateBusinessUnit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid brand ID: must be a valid UUID")
		return
	}
	unitID, err := uuid.Parse(chi.URLParam(r, "unitId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid business unit ID: must be a valid UUID")
		return
	}

	var req domain.UpdateBrandBusinessUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	unit, err := h.brandService.UpdateBusinessUnit(r.Context(), id, unitID, &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to update business unit", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update business unit")
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

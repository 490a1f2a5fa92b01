package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"github.com/sosmedia/portfolio-api/internal/service"
	"go.uber.org/zap"
)

type OpportunityHandler struct {
	oppService *service.OpportunityService
	logger     *zap.Logger
}

func NewOpportunityHandler(oppService *service.OpportunityService, logger *zap.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		oppService: oppService,
		logger:     logger,
	}
}

// @Summary List opportunities
// @Description List opportunities visible to the caller, enriched with revenue
// @Tags Opportunities
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param fiscalYearId query string false "Filter by fiscal year ID"
// @Param brandId query string false "Filter by brand ID"
// @Param productId query string false "Filter by product ID"
// @Param status query string false "Filter by status (active, disabled, expired, won, lost, abandoned)"
// @Param approved query bool false "Filter by approval flag"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /opportunities [get]
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	filters := &repository.OpportunityFilters{}
	if f := r.URL.Query().Get("fiscalYearId"); f != "" {
		if id, err := uuid.Parse(f); err == nil {
			filters.FiscalYearID = &id
		}
	}
	if b := r.URL.Query().Get("brandId"); b != "" {
		if id, err := uuid.Parse(b); err == nil {
			filters.BrandID = &id
		}
	}
	if p := r.URL.Query().Get("productId"); p != "" {
		if id, err := uuid.Parse(p); err == nil {
			filters.ProductID = &id
		}
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.OpportunityStatus(s)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filters.Statuses = []domain.OpportunityStatus{status}
	}
	if a := r.URL.Query().Get("approved"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			filters.Approved = &v
		}
	}

	result, err := h.oppService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to list opportunities", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list opportunities")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Create opportunity
// @Description Create an opportunity; the fiscal year defaults to the current one
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param request body domain.CreateOpportunityRequest true "Opportunity data"
// @Success 201 {object} domain.OpportunityDTO
// @Failure 409 {object} domain.APIError "Duplicate opportunity key"
// @Failure 422 {object} domain.APIError "Business unit belongs to another brand"
// @Security BearerAuth
// @Router /opportunities [post]
func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	opp, err := h.oppService.Create(r.Context(), &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to create opportunity", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create opportunity")
		return
	}

	w.Header().Set("Location", "/api/v1/opportunities/"+opp.ID.String())
	respondJSON(w, http.StatusCreated, opp)
}

// @Summary Get opportunity
// @Description Get an opportunity with its revenue figures for its fiscal year
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID"
// @Success 200 {object} domain.OpportunityWithRevenueDTO
// @Security BearerAuth
// @Router /opportunities/{id} [get]
func (h *OpportunityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID: must be a valid UUID")
		return
	}

	opp, err := h.oppService.GetByID(r.Context(), id)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to get opportunity", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get opportunity")
		return
	}
	respondJSON(w, http.StatusOK, opp)
}

// @Summary Update opportunity
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param request body domain.UpdateOpportunityRequest true "Opportunity data"
// @Success 200 {object} domain.OpportunityDTO
// @Security BearerAuth
// @Router /opportunities/{id} [put]
func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID: must be a valid UUID")
		return
	}

	var req domain.UpdateOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	opp, err := h.oppService.Update(r.Context(), id, &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to update opportunity", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update opportunity")
		return
	}
	respondJSON(w, http.StatusOK, opp)
}

// @Summary Change opportunity status
// @Description Move an opportunity to a new lifecycle status; date stamps are write-once
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param request body domain.UpdateOpportunityStatusRequest true "New status"
// @Success 200 {object} domain.OpportunityDTO
// @Security BearerAuth
// @Router /opportunities/{id}/status [post]
func (h *OpportunityHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID: must be a valid UUID")
		return
	}

	var req domain.UpdateOpportunityStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	opp, err := h.oppService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to update opportunity status", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update opportunity status")
		return
	}
	respondJSON(w, http.StatusOK, opp)
}

// @Summary Approve opportunity
// @Description Approve an opportunity, recording the approver; the approval date is write-once
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID"
// @Success 200 {object} domain.OpportunityDTO
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /opportunities/{id}/approve [post]
func (h *OpportunityHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID: must be a valid UUID")
		return
	}

	opp, err := h.oppService.Approve(r.Context(), id)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to approve opportunity", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to approve opportunity")
		return
	}
	respondJSON(w, http.StatusOK, opp)
}

// @Summary Record period revenue
// @Description Record the revenue for one fiscal period, replacing any earlier figure
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param year path int true "Fiscal year (e.g. 2026)"
// @Param period path int true "Fiscal period (1-12)"
// @Param request body domain.UpsertPeriodRevenueRequest true "Revenue figure"
// @Success 200 {object} domain.PeriodPerformanceDTO
// @Security BearerAuth
// @Router /opportunities/{id}/performance/{year}/periods/{period} [put]
func (h *OpportunityHandler) UpsertPeriodRevenue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID: must be a valid UUID")
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid fiscal year: must be a number")
		return
	}
	period, err := strconv.Atoi(chi.URLParam(r, "period"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid period: must be a number")
		return
	}

	var req domain.UpsertPeriodRevenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	row, err := h.oppService.UpsertPeriodRevenue(r.Context(), id, year, period, &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to record period revenue", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to record period revenue")
		return
	}
	respondJSON(w, http.StatusOK, row)
}

// @Summary List period revenue
// @Description List recorded periods of an opportunity in a fiscal year
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param year path int true "Fiscal year (e.g. 2026)"
// @Success 200 {array} domain.PeriodPerformanceDTO
// @Security BearerAuth
// @Router /opportunities/{id}/performance/{year} [get]
func (h *OpportunityHandler) ListPeriodRevenue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID: must be a valid UUID")
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid fiscal year: must be a number")
		return
	}

	rows, err := h.oppService.ListPeriodRevenue(r.Context(), id, year)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to list period revenue", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list period revenue")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

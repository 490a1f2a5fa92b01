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

type FiscalYearHandler struct {
	yearService *service.FiscalYearService
	logger      *zap.Logger
}

func NewFiscalYearHandler(yearService *service.FiscalYearService, logger *zap.Logger) *FiscalYearHandler {
	return &FiscalYearHandler{
		yearService: yearService,
		logger:      logger,
	}
}

// @Summary List fiscal years
// @Tags FiscalYears
// @Produce json
// @Success 200 {array} domain.FiscalYearDTO
// @Security BearerAuth
// @Router /fiscal-years [get]
func (h *FiscalYearHandler) List(w http.ResponseWriter, r *http.Request) {
	years, err := h.yearService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list fiscal years", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list fiscal years")
		return
	}
	respondJSON(w, http.StatusOK, years)
}

// @Summary Create fiscal year
// @Description Create a fiscal year; marking it current clears the flag elsewhere
// @Tags FiscalYears
// @Accept json
// @Produce json
// @Param request body domain.CreateFiscalYearRequest true "Fiscal year data"
// @Success 201 {object} domain.FiscalYearDTO
// @Security BearerAuth
// @Router /fiscal-years [post]
func (h *FiscalYearHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFiscalYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	year, err := h.yearService.Create(r.Context(), &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to create fiscal year", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create fiscal year")
		return
	}

	w.Header().Set("Location", "/api/v1/fiscal-years/"+year.ID.String())
	respondJSON(w, http.StatusCreated, year)
}

// @Summary Get current fiscal year
// @Tags FiscalYears
// @Produce json
// @Success 200 {object} domain.FiscalYearDTO
// @Failure 422 {object} domain.APIError "No current fiscal year configured"
// @Security BearerAuth
// @Router /fiscal-years/current [get]
func (h *FiscalYearHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	year, err := h.yearService.GetCurrent(r.Context())
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to get current fiscal year", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get current fiscal year")
		return
	}
	respondJSON(w, http.StatusOK, year)
}

// @Summary Get fiscal year
// @Tags FiscalYears
// @Produce json
// @Param id path string true "Fiscal year ID"
// @Success 200 {object} domain.FiscalYearDTO
// @Security BearerAuth
// @Router /fiscal-years/{id} [get]
func (h *FiscalYearHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid fiscal year ID: must be a valid UUID")
		return
	}

	year, err := h.yearService.GetByID(r.Context(), id)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to get fiscal year", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get fiscal year")
		return
	}
	respondJSON(w, http.StatusOK, year)
}

// @Summary Set current fiscal year
// @Description Make this fiscal year the single current one
// @Tags FiscalYears
// @Produce json
// @Param id path string true "Fiscal year ID"
// @Success 200 {object} domain.FiscalYearDTO
// @Security BearerAuth
// @Router /fiscal-years/{id}/current [post]
func (h *FiscalYearHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid fiscal year ID: must be a valid UUID")
		return
	}

	year, err := h.yearService.SetCurrent(r.Context(), id)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to set current fiscal year", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to set current fiscal year")
		return
	}
	respondJSON(w, http.StatusOK, year)
}

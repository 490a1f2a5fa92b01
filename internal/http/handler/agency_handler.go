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

// AgencyHandler serves both media groups and agencies
type AgencyHandler struct {
	agencyService *service.AgencyService
	logger        *zap.Logger
}

func NewAgencyHandler(agencyService *service.AgencyService, logger *zap.Logger) *AgencyHandler {
	return &AgencyHandler{
		agencyService: agencyService,
		logger:        logger,
	}
}

// @Summary List media groups
// @Tags MediaGroups
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /media-groups [get]
func (h *AgencyHandler) ListMediaGroups(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := h.agencyService.ListMediaGroups(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list media groups", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list media groups")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Create media group
// @Tags MediaGroups
// @Accept json
// @Produce json
// @Param request body domain.CreateMediaGroupRequest true "Media group data"
// @Success 201 {object} domain.MediaGroupDTO
// @Security BearerAuth
// @Router /media-groups [post]
func (h *AgencyHandler) CreateMediaGroup(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMediaGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	group, err := h.agencyService.CreateMediaGroup(r.Context(), &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to create media group", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create media group")
		return
	}

	w.Header().Set("Location", "/api/v1/media-groups/"+group.ID.String())
	respondJSON(w, http.StatusCreated, group)
}

// @Summary Get media group
// @Tags MediaGroups
// @Produce json
// @Param id path string true "Media group ID"
// @Success 200 {object} domain.MediaGroupDTO
// @Security BearerAuth
// @Router /media-groups/{id} [get]
func (h *AgencyHandler) GetMediaGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid media group ID: must be a valid UUID")
		return
	}

	group, err := h.agencyService.GetMediaGroup(r.Context(), id)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to get media group", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get media group")
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// @Summary Update media group
// @Tags MediaGroups
// @Accept json
// @Produce json
// @Param id path string true "Media group ID"
// @Param request body domain.UpdateMediaGroupRequest true "Media group data"
// @Success 200 {object} domain.MediaGroupDTO
// @Security BearerAuth
// @Router /media-groups/{id} [put]
func (h *AgencyHandler) UpdateMediaGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid media group ID: must be a valid UUID")
		return
	}

	var req domain.UpdateMediaGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	group, err := h.agencyService.UpdateMediaGroup(r.Context(), id, &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to update media group", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update media group")
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// @Summary List agencies
// @Tags Agencies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Router /agencies [get]
func (h *AgencyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := h.agencyService.List(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list agencies", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list agencies")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Create agency
// @Tags Agencies
// @Accept json
// @Produce json
// @Param request body domain.CreateAgencyRequest true "Agency data"
// @Success 201 {object} domain.AgencyDTO
// @Security BearerAuth
// @Router /agencies [post]
func (h *AgencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAgencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	agency, err := h.agencyService.Create(r.Context(), &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to create agency", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create agency")
		return
	}

	w.Header().Set("Location", "/api/v1/agencies/"+agency.ID.String())
	respondJSON(w, http.StatusCreated, agency)
}

// @Summary Get agency
// @Tags Agencies
// @Produce json
// @Param id path string true "Agency ID"
// @Success 200 {object} domain.AgencyDTO
// @Security BearerAuth
// @Router /agencies/{id} [get]
func (h *AgencyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid agency ID: must be a valid UUID")
		return
	}

	agency, err := h.agencyService.GetByID(r.Context(), id)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to get agency", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get agency")
		return
	}
	respondJSON(w, http.StatusOK, agency)
}

// @Summary Update agency
// @Tags Agencies
// @Accept json
// @Produce json
// @Param id path string true "Agency ID"
// @Param request body domain.UpdateAgencyRequest true "Agency data"
// @Success 200 {object} domain.AgencyDTO
// @Security BearerAuth
// @Router /agencies/{id} [put]
func (h *AgencyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid agency ID: must be a valid UUID")
		return
	}

	var req domain.UpdateAgencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	agency, err := h.agencyService.Update(r.Context(), id, &req)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to update agency", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update agency")
		return
	}
	respondJSON(w, http.StatusOK, agency)
}

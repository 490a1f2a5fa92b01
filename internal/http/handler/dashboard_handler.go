package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sosmedia/portfolio-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// @Summary Brand dashboard table
// @Description One row per visible brand: total target, prior-year revenue, G.R.O.W. bucket
// @Tags Dashboard
// @Produce json
// @Success 200 {array} domain.BrandDashboardRow
// @Security BearerAuth
// @Router /dashboard/brands [get]
func (h *DashboardHandler) Brands(w http.ResponseWriter, r *http.Request) {
	rows, err := h.dashboardService.BrandTable(r.Context())
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to build brand dashboard", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build brand dashboard")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// @Summary G.R.O.W. bucket rollup
// @Description Per-bucket brand counts, target totals and prior-year revenue
// @Tags Dashboard
// @Produce json
// @Success 200 {array} domain.GrowBucketSummary
// @Security BearerAuth
// @Router /dashboard/grow [get]
func (h *DashboardHandler) Grow(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.dashboardService.GrowSummary(r.Context())
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to build grow summary", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build grow summary")
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// @Summary Top brands by target
// @Description The n largest brands by target; the remainder is folded into "Other"
// @Tags Dashboard
// @Produce json
// @Param n query int false "Number of brands" default(5)
// @Success 200 {array} domain.TopBrandDTO
// @Security BearerAuth
// @Router /dashboard/top-brands [get]
func (h *DashboardHandler) TopBrands(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	top, err := h.dashboardService.TopBrands(r.Context(), n)
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to build top brands", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build top brands")
		return
	}
	respondJSON(w, http.StatusOK, top)
}

// @Summary Opportunity status counts
// @Description Opportunity counts per status for the current fiscal year
// @Tags Dashboard
// @Produce json
// @Success 200 {array} domain.StatusCountDTO
// @Security BearerAuth
// @Router /dashboard/status [get]
func (h *DashboardHandler) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.dashboardService.StatusCounts(r.Context())
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to count statuses", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to count statuses")
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

// @Summary Fiscal time remaining
// @Description Current period and days remaining of the current fiscal year
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.TimeRemainingDTO
// @Security BearerAuth
// @Router /dashboard/time-remaining [get]
func (h *DashboardHandler) TimeRemaining(w http.ResponseWriter, r *http.Request) {
	remaining, err := h.dashboardService.TimeRemaining(r.Context(), time.Now())
	if err != nil {
		if respondServiceError(w, err) {
			return
		}
		h.logger.Error("failed to compute time remaining", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute time remaining")
		return
	}
	respondJSON(w, http.StatusOK, remaining)
}

package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sosmedia/portfolio-api/internal/auth"
	"github.com/sosmedia/portfolio-api/internal/config"
	"github.com/sosmedia/portfolio-api/internal/database"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/http/handler"
	"github.com/sosmedia/portfolio-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/sosmedia/portfolio-api/docs" // generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	db                 *gorm.DB
	authMiddleware     *auth.Middleware
	rateLimiter        *middleware.RateLimiter
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	agencyHandler      *handler.AgencyHandler
	orgUnitHandler     *handler.OrgBusinessUnitHandler
	brandHandler       *handler.BrandHandler
	productHandler     *handler.ProductHandler
	fiscalYearHandler  *handler.FiscalYearHandler
	opportunityHandler *handler.OpportunityHandler
	dashboardHandler   *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	agencyHandler *handler.AgencyHandler,
	orgUnitHandler *handler.OrgBusinessUnitHandler,
	brandHandler *handler.BrandHandler,
	productHandler *handler.ProductHandler,
	fiscalYearHandler *handler.FiscalYearHandler,
	opportunityHandler *handler.OpportunityHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		db:                 db,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
		authHandler:        authHandler,
		userHandler:        userHandler,
		agencyHandler:      agencyHandler,
		orgUnitHandler:     orgUnitHandler,
		brandHandler:       brandHandler,
		productHandler:     productHandler,
		fiscalYearHandler:  fiscalYearHandler,
		opportunityHandler: opportunityHandler,
		dashboardHandler:   dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		if !allHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			status = "unhealthy"
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes; everything requires an authenticated, known user
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)
			r.Get("/auth/permissions", rt.authHandler.Permissions)

			// Users (sales director only)
			r.Route("/users", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireRole(domain.RoleSalesDirector))
				r.Get("/", rt.userHandler.List)
				r.Post("/", rt.userHandler.Create)
				r.Get("/{id}", rt.userHandler.GetByID)
				r.Put("/{id}", rt.userHandler.Update)
			})

			// Media groups
			r.Route("/media-groups", func(r chi.Router) {
				r.Get("/", rt.agencyHandler.ListMediaGroups)
				r.Get("/{id}", rt.agencyHandler.GetMediaGroup)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequirePermission(domain.PermManageCatalog))
					r.Post("/", rt.agencyHandler.CreateMediaGroup)
					r.Put("/{id}", rt.agencyHandler.UpdateMediaGroup)
				})
			})

			// Agencies
			r.Route("/agencies", func(r chi.Router) {
				r.Get("/", rt.agencyHandler.List)
				r.Get("/{id}", rt.agencyHandler.GetByID)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequirePermission(domain.PermManageCatalog))
					r.Post("/", rt.agencyHandler.Create)
					r.Put("/{id}", rt.agencyHandler.Update)
				})
			})

			// Org business units
			r.Route("/org-business-units", func(r chi.Router) {
				r.Get("/", rt.orgUnitHandler.List)
				r.Get("/{id}", rt.orgUnitHandler.GetByID)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequirePermission(domain.PermManageCatalog))
					r.Post("/", rt.orgUnitHandler.Create)
					r.Put("/{id}", rt.orgUnitHandler.Update)
				})
			})

			// Brands (reads are scope-filtered in the repository)
			r.Route("/brands", func(r chi.Router) {
				r.Get("/", rt.brandHandler.List)
				r.Get("/{id}", rt.brandHandler.GetByID)
				r.Get("/{id}/business-units", rt.brandHandler.ListBusinessUnits)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequirePermission(domain.PermManageCatalog))
					r.Post("/", rt.brandHandler.Create)
					r.Put("/{id}", rt.brandHandler.Update)
					r.Post("/{id}/business-units", rt.brandHandler.CreateBusinessUnit)
					r.Put("/{id}/business-units/{unitId}", rt.brandHandler.UpdateBusinessUnit)
				})
			})

			// Products
			r.Route("/products", func(r chi.Router) {
				r.Get("/", rt.productHandler.List)
				r.Get("/{id}", rt.productHandler.GetByID)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequirePermission(domain.PermManageCatalog))
					r.Post("/", rt.productHandler.Create)
					r.Put("/{id}", rt.productHandler.Update)
				})
			})

			// Fiscal years
			r.Route("/fiscal-years", func(r chi.Router) {
				r.Get("/", rt.fiscalYearHandler.List)
				r.Get("/current", rt.fiscalYearHandler.GetCurrent)
				r.Get("/{id}", rt.fiscalYearHandler.GetByID)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequirePermission(domain.PermManageFiscalYears))
					r.Post("/", rt.fiscalYearHandler.Create)
					r.Post("/{id}/current", rt.fiscalYearHandler.SetCurrent)
				})
			})

			// Opportunities; permission and scope checks live in the service
			r.Route("/opportunities", func(r chi.Router) {
				r.Get("/", rt.opportunityHandler.List)
				r.Post("/", rt.opportunityHandler.Create)
				r.Get("/{id}", rt.opportunityHandler.GetByID)
				r.Put("/{id}", rt.opportunityHandler.Update)
				r.Post("/{id}/status", rt.opportunityHandler.UpdateStatus)
				r.Post("/{id}/approve", rt.opportunityHandler.Approve)
				r.Get("/{id}/performance/{year}", rt.opportunityHandler.ListPeriodRevenue)
				r.Put("/{id}/performance/{year}/periods/{period}", rt.opportunityHandler.UpsertPeriodRevenue)
			})

			// Dashboard
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/brands", rt.dashboardHandler.Brands)
				r.Get("/grow", rt.dashboardHandler.Grow)
				r.Get("/top-brands", rt.dashboardHandler.TopBrands)
				r.Get("/status", rt.dashboardHandler.StatusCounts)
				r.Get("/time-remaining", rt.dashboardHandler.TimeRemaining)
			})
		})
	})

	return r
}

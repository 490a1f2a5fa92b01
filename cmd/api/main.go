package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sosmedia/portfolio-api/docs"
	"github.com/sosmedia/portfolio-api/internal/auth"
	"github.com/sosmedia/portfolio-api/internal/config"
	"github.com/sosmedia/portfolio-api/internal/database"
	"github.com/sosmedia/portfolio-api/internal/http/handler"
	"github.com/sosmedia/portfolio-api/internal/http/middleware"
	"github.com/sosmedia/portfolio-api/internal/http/router"
	"github.com/sosmedia/portfolio-api/internal/jobs"
	"github.com/sosmedia/portfolio-api/internal/logger"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"github.com/sosmedia/portfolio-api/internal/service"
	"go.uber.org/zap"
)

// @title Portfolio Planner API
// @version 1.0
// @description Sales opportunity and revenue forecasting API

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	mediaGroupRepo := repository.NewMediaGroupRepository(db)
	agencyRepo := repository.NewAgencyRepository(db)
	orgUnitRepo := repository.NewOrgBusinessUnitRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	brandUnitRepo := repository.NewBrandBusinessUnitRepository(db)
	productRepo := repository.NewProductRepository(db)
	yearRepo := repository.NewFiscalYearRepository(db)
	oppRepo := repository.NewOpportunityRepository(db)
	perfRepo := repository.NewPerformanceRepository(db)

	// Services
	userService := service.NewUserService(userRepo, orgUnitRepo, log)
	agencyService := service.NewAgencyService(agencyRepo, mediaGroupRepo, log)
	orgUnitService := service.NewOrgBusinessUnitService(orgUnitRepo, userRepo, log)
	brandService := service.NewBrandService(brandRepo, brandUnitRepo, agencyRepo, orgUnitRepo, userRepo, log)
	productService := service.NewProductService(productRepo, log)
	yearService := service.NewFiscalYearService(yearRepo, log)
	revenueService := service.NewRevenueService(perfRepo)
	oppService := service.NewOpportunityService(oppRepo, brandRepo, brandUnitRepo, productRepo, yearRepo, perfRepo, revenueService, cfg.Fiscal.YearStartMonth, log)
	dashboardService := service.NewDashboardService(brandRepo, oppRepo, perfRepo, yearRepo, cfg.Fiscal.YearStartMonth, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, userRepo, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	authHandler := handler.NewAuthHandler(log)
	userHandler := handler.NewUserHandler(userService, log)
	agencyHandler := handler.NewAgencyHandler(agencyService, log)
	orgUnitHandler := handler.NewOrgBusinessUnitHandler(orgUnitService, log)
	brandHandler := handler.NewBrandHandler(brandService, log)
	productHandler := handler.NewProductHandler(productService, log)
	yearHandler := handler.NewFiscalYearHandler(yearService, log)
	oppHandler := handler.NewOpportunityHandler(oppService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		userHandler,
		agencyHandler,
		orgUnitHandler,
		brandHandler,
		productHandler,
		yearHandler,
		oppHandler,
		dashboardHandler,
	)

	// Expiry sweep runs only when enabled; every expiry goes through the
	// same lifecycle path as a manual status change
	var scheduler *jobs.Scheduler
	if cfg.Jobs.ExpireOpportunities {
		scheduler = jobs.NewScheduler(log)
		expiryJob := jobs.NewExpiryJob(oppService, log)
		if err := scheduler.AddJob(jobs.ExpiryJobName, cfg.Jobs.ExpireSchedule, expiryJob.Run); err != nil {
			log.Error("Failed to register expiry job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with expiry job",
				zap.String("cron_expr", cfg.Jobs.ExpireSchedule),
			)
		}
	} else {
		log.Info("Opportunity expiry sweep disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

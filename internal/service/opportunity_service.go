package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sosmedia/portfolio-api/internal/auth"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/mapper"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OpportunityService struct {
	oppRepo   *repository.OpportunityRepository
	brandRepo *repository.BrandRepository
	unitRepo  *repository.BrandBusinessUnitRepository
	prodRepo  *repository.ProductRepository
	yearRepo  *repository.FiscalYearRepository
	perfRepo  *repository.PerformanceRepository
	revenue   *RevenueService
	// startMonth is the first calendar month of the fiscal year
	startMonth int
	logger     *zap.Logger
}

func NewOpportunityService(
	oppRepo *repository.OpportunityRepository,
	brandRepo *repository.BrandRepository,
	unitRepo *repository.BrandBusinessUnitRepository,
	prodRepo *repository.ProductRepository,
	yearRepo *repository.FiscalYearRepository,
	perfRepo *repository.PerformanceRepository,
	revenue *RevenueService,
	startMonth int,
	logger *zap.Logger,
) *OpportunityService {
	return &OpportunityService{
		oppRepo:    oppRepo,
		brandRepo:  brandRepo,
		unitRepo:   unitRepo,
		prodRepo:   prodRepo,
		yearRepo:   yearRepo,
		perfRepo:   perfRepo,
		revenue:    revenue,
		startMonth: startMonth,
		logger:     logger,
	}
}

// checkUnitBelongsToBrand aborts when the business unit is set but belongs to
// a different brand.
func (s *OpportunityService) checkUnitBelongsToBrand(ctx context.Context, unitID *uuid.UUID, brandID uuid.UUID) error {
	if unitID == nil {
		return nil
	}
	unit, err := s.unitRepo.GetByID(ctx, *unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: business unit", ErrNotFound)
		}
		return fmt.Errorf("failed to verify business unit: %w", err)
	}
	if unit.BrandID != brandID {
		return ErrUnitBrandMismatch
	}
	return nil
}

func (s *OpportunityService) Create(ctx context.Context, req *domain.CreateOpportunityRequest) (*domain.OpportunityDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.Grants(domain.PermCreateOpportunity) {
		return nil, ErrPermissionDenied
	}

	// Brand lookup is scope-filtered: a brand outside the caller's scope
	// reads as not found.
	if _, err := s.brandRepo.GetByID(ctx, req.BrandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: brand", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify brand: %w", err)
	}
	if _, err := s.prodRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}
	if err := s.checkUnitBelongsToBrand(ctx, req.BusinessUnitID, req.BrandID); err != nil {
		return nil, err
	}

	fiscalYearID := req.FiscalYearID
	if fiscalYearID == nil {
		current, err := s.yearRepo.GetCurrent(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoCurrentFiscalYear
			}
			return nil, fmt.Errorf("failed to get current fiscal year: %w", err)
		}
		fiscalYearID = &current.ID
	} else {
		if _, err := s.yearRepo.GetByID(ctx, *fiscalYearID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: fiscal year", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to verify fiscal year: %w", err)
		}
	}

	exists, err := s.oppRepo.ExistsForKey(ctx, req.BrandID, req.BusinessUnitID, req.ProductID, *fiscalYearID, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check opportunity uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: an opportunity for this brand, business unit, product and fiscal year already exists", ErrConflict)
	}

	target := decimal.Zero
	if req.Target != nil {
		target = *req.Target
	}
	currency := req.TargetCurrency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	opp := &domain.Opportunity{
		Name:           req.Name,
		Description:    req.Description,
		Status:         domain.OpportunityStatusActive,
		BrandID:        req.BrandID,
		BusinessUnitID: req.BusinessUnitID,
		ProductID:      req.ProductID,
		FiscalYearID:   *fiscalYearID,
		Target:         target,
		TargetCurrency: currency,
	}
	if err := s.oppRepo.Create(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}

	s.logger.Info("opportunity created",
		zap.String("opportunity_id", opp.ID.String()),
		zap.String("brand_id", opp.BrandID.String()),
	)

	opp, err = s.oppRepo.GetByID(ctx, opp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload opportunity: %w", err)
	}
	dto := mapper.ToOpportunityDTO(opp)
	return &dto, nil
}

func (s *OpportunityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OpportunityWithRevenueDTO, error) {
	opp, err := s.oppRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	enriched, err := s.revenue.WithRevenue(ctx, []domain.Opportunity{*opp}, opp.FiscalYearID)
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

func (s *OpportunityService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateOpportunityRequest) (*domain.OpportunityDTO, error) {
	opp, err := s.oppRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	if err := s.checkUnitBelongsToBrand(ctx, req.BusinessUnitID, opp.BrandID); err != nil {
		return nil, err
	}
	if _, err := s.prodRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	// Moving the product or business unit can land on another opportunity's
	// natural key, so the uniqueness check reruns on update too.
	exists, err := s.oppRepo.ExistsForKey(ctx, opp.BrandID, req.BusinessUnitID, req.ProductID, opp.FiscalYearID, opp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check opportunity uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: an opportunity for this brand, business unit, product and fiscal year already exists", ErrConflict)
	}

	opp.Name = req.Name
	opp.Description = req.Description
	opp.BusinessUnitID = req.BusinessUnitID
	opp.ProductID = req.ProductID
	if req.Target != nil {
		opp.Target = *req.Target
	}
	if req.TargetCurrency != "" {
		opp.TargetCurrency = req.TargetCurrency
	}

	if err := s.oppRepo.Update(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to update opportunity: %w", err)
	}

	opp, err = s.oppRepo.GetByID(ctx, opp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload opportunity: %w", err)
	}
	dto := mapper.ToOpportunityDTO(opp)
	return &dto, nil
}

func (s *OpportunityService) List(ctx context.Context, page, pageSize int, filters *repository.OpportunityFilters) (*domain.PaginatedResponse, error) {
	opps, total, err := s.oppRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}

	// Revenue enrichment groups by fiscal year so each opportunity's sums
	// come from its own year.
	byYear := make(map[uuid.UUID][]domain.Opportunity)
	for _, opp := range opps {
		byYear[opp.FiscalYearID] = append(byYear[opp.FiscalYearID], opp)
	}

	enrichedByID := make(map[uuid.UUID]domain.OpportunityWithRevenueDTO, len(opps))
	for yearID, group := range byYear {
		enriched, err := s.revenue.WithRevenue(ctx, group, yearID)
		if err != nil {
			return nil, err
		}
		for _, dto := range enriched {
			enrichedByID[dto.ID] = dto
		}
	}

	dtos := make([]domain.OpportunityWithRevenueDTO, len(opps))
	for i := range opps {
		dtos[i] = enrichedByID[opps[i].ID]
	}
	return paginate(dtos, total, page, pageSize), nil
}

// UpdateStatus moves an opportunity to a new status. Any status may move to
// any status; entering a dated status stamps its date field only the first
// time. The whole transition commits in one transaction.
func (s *OpportunityService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OpportunityStatus) (*domain.OpportunityDTO, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	// Scope check up front so out-of-scope ids read as not found
	if _, err := s.oppRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	err := s.oppRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		var opp domain.Opportunity
		if err := tx.Where("id = ?", id).First(&opp).Error; err != nil {
			return err
		}
		opp.ApplyStatus(status, time.Now().UTC())
		return tx.Save(&opp).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.logger.Info("opportunity status changed",
		zap.String("opportunity_id", id.String()),
		zap.String("status", string(status)),
	)

	opp, err := s.oppRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload opportunity: %w", err)
	}
	dto := mapper.ToOpportunityDTO(opp)
	return &dto, nil
}

// Approve marks the opportunity approved, recording the approving user and
// stamping the approval date on the first approval only.
func (s *OpportunityService) Approve(ctx context.Context, id uuid.UUID) (*domain.OpportunityDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.Grants(domain.PermApproveOpportunity) {
		return nil, ErrPermissionDenied
	}

	if _, err := s.oppRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	err := s.oppRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		var opp domain.Opportunity
		if err := tx.Where("id = ?", id).First(&opp).Error; err != nil {
			return err
		}
		opp.ApplyApproval(userCtx.UserID, time.Now().UTC())
		return tx.Save(&opp).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve opportunity: %w", err)
	}

	opp, err := s.oppRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload opportunity: %w", err)
	}
	dto := mapper.ToOpportunityDTO(opp)
	return &dto, nil
}

// UpsertPeriodRevenue records the revenue for one fiscal period of an
// opportunity in a fiscal year, replacing any earlier figure for the period.
func (s *OpportunityService) UpsertPeriodRevenue(ctx context.Context, opportunityID uuid.UUID, year, period int, req *domain.UpsertPeriodRevenueRequest) (*domain.PeriodPerformanceDTO, error) {
	if period < 1 || period > 12 {
		return nil, ErrInvalidPeriod
	}

	opp, err := s.oppRepo.GetByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	fiscalYear, err := s.yearRepo.GetByYear(ctx, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: fiscal year", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get fiscal year: %w", err)
	}

	perf, err := s.perfRepo.GetOrCreate(ctx, opp.ID, fiscalYear.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve performance: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	row, err := s.perfRepo.UpsertPeriod(ctx, perf, period, req.Revenue, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to record revenue: %w", err)
	}

	dto := mapper.ToPeriodPerformanceDTO(row, opp.ID, s.startMonth, fiscalYear.Year)
	return &dto, nil
}

// ListPeriodRevenue returns the recorded periods of an opportunity in a
// fiscal year, with derived calendar months.
func (s *OpportunityService) ListPeriodRevenue(ctx context.Context, opportunityID uuid.UUID, year int) ([]domain.PeriodPerformanceDTO, error) {
	opp, err := s.oppRepo.GetByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	fiscalYear, err := s.yearRepo.GetByYear(ctx, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: fiscal year", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get fiscal year: %w", err)
	}

	perf, err := s.perfRepo.GetByOpportunity(ctx, opp.ID, fiscalYear.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []domain.PeriodPerformanceDTO{}, nil
		}
		return nil, fmt.Errorf("failed to get performance: %w", err)
	}

	dtos := make([]domain.PeriodPerformanceDTO, len(perf.Periods))
	for i := range perf.Periods {
		dtos[i] = mapper.ToPeriodPerformanceDTO(&perf.Periods[i], opp.ID, s.startMonth, fiscalYear.Year)
	}
	return dtos, nil
}

// ExpireStale moves active opportunities of non-current fiscal years to
// expired through the normal lifecycle path. Returns how many were expired.
func (s *OpportunityService) ExpireStale(ctx context.Context) (int, error) {
	opps, err := s.oppRepo.ListActiveForExpiredYears(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale opportunities: %w", err)
	}

	expired := 0
	for i := range opps {
		id := opps[i].ID
		err := s.oppRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
			var opp domain.Opportunity
			if err := tx.Where("id = ?", id).First(&opp).Error; err != nil {
				return err
			}
			opp.ApplyStatus(domain.OpportunityStatusExpired, time.Now().UTC())
			return tx.Save(&opp).Error
		})
		if err != nil {
			s.logger.Warn("failed to expire opportunity",
				zap.String("opportunity_id", id.String()),
				zap.Error(err),
			)
			continue
		}
		expired++
	}
	return expired, nil
}

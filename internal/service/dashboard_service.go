package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DashboardService builds the scoped portfolio views. All figures are computed
// from the caller's visible brand set; two callers with different roles see
// different numbers from the same endpoints.
type DashboardService struct {
	brandRepo  *repository.BrandRepository
	oppRepo    *repository.OpportunityRepository
	perfRepo   *repository.PerformanceRepository
	yearRepo   *repository.FiscalYearRepository
	startMonth int
	logger     *zap.Logger
}

func NewDashboardService(
	brandRepo *repository.BrandRepository,
	oppRepo *repository.OpportunityRepository,
	perfRepo *repository.PerformanceRepository,
	yearRepo *repository.FiscalYearRepository,
	startMonth int,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		brandRepo:  brandRepo,
		oppRepo:    oppRepo,
		perfRepo:   perfRepo,
		yearRepo:   yearRepo,
		startMonth: startMonth,
		logger:     logger,
	}
}

// brandFigures is the per-brand raw material shared by the dashboard views
type brandFigures struct {
	brands    []domain.Brand
	targets   map[uuid.UUID]decimal.Decimal
	prior     map[uuid.UUID]decimal.Decimal
	portfolio decimal.Decimal
	year      *domain.FiscalYear
}

func (s *DashboardService) loadFigures(ctx context.Context) (*brandFigures, error) {
	year, err := s.yearRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCurrentFiscalYear
		}
		return nil, fmt.Errorf("failed to get current fiscal year: %w", err)
	}

	brands, err := s.brandRepo.ListScoped(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	ids := make([]uuid.UUID, len(brands))
	for i := range brands {
		ids[i] = brands[i].ID
	}

	targets, err := s.perfRepo.TargetByBrand(ctx, ids, year.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate targets: %w", err)
	}

	// Prior-year revenue comes from last fiscal year's recorded performance.
	// No prior year on record means every brand reads zero.
	prior := make(map[uuid.UUID]decimal.Decimal)
	priorYear, err := s.yearRepo.GetByYear(ctx, year.Year-1)
	if err == nil {
		prior, err = s.perfRepo.RevenueByBrand(ctx, ids, priorYear.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate prior revenue: %w", err)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get prior fiscal year: %w", err)
	}

	portfolio := decimal.Zero
	for _, v := range prior {
		portfolio = portfolio.Add(v)
	}

	return &brandFigures{
		brands:    brands,
		targets:   targets,
		prior:     prior,
		portfolio: portfolio,
		year:      year,
	}, nil
}

// BrandTable returns one dashboard row per visible brand, classified into its
// G.R.O.W. bucket against the portfolio's prior-year revenue.
func (s *DashboardService) BrandTable(ctx context.Context) ([]domain.BrandDashboardRow, error) {
	fig, err := s.loadFigures(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.BrandDashboardRow, 0, len(fig.brands))
	for i := range fig.brands {
		brand := &fig.brands[i]

		var target *decimal.Decimal
		if t, ok := fig.targets[brand.ID]; ok {
			target = &t
		}
		priorRevenue := fig.prior[brand.ID]

		row := domain.BrandDashboardRow{
			BrandID:          brand.ID,
			BrandName:        brand.Name,
			TotalTarget:      decimal.Zero,
			PriorYearRevenue: priorRevenue,
			Bucket:           Classify(target, priorRevenue, fig.portfolio),
		}
		if target != nil {
			row.TotalTarget = *target
		}
		if brand.Agency != nil {
			row.AgencyName = brand.Agency.Name
		}
		if brand.User != nil {
			row.OwnerName = brand.User.DisplayName
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// GrowSummary rolls the visible brands up into the four G.R.O.W. buckets
func (s *DashboardService) GrowSummary(ctx context.Context) ([]domain.GrowBucketSummary, error) {
	fig, err := s.loadFigures(ctx)
	if err != nil {
		return nil, err
	}

	acc := newGrowAccumulator()
	for i := range fig.brands {
		var target *decimal.Decimal
		if t, ok := fig.targets[fig.brands[i].ID]; ok {
			target = &t
		}
		acc.add(target, fig.prior[fig.brands[i].ID], fig.portfolio)
	}
	return acc.summaries(), nil
}

// TopBrands returns the n visible brands with the largest targets. When more
// brands exist, the remainder is folded into a final "Other" entry.
func (s *DashboardService) TopBrands(ctx context.Context, n int) ([]domain.TopBrandDTO, error) {
	if n < 1 {
		n = 5
	}

	fig, err := s.loadFigures(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.TopBrandDTO, 0, len(fig.brands))
	for i := range fig.brands {
		target := decimal.Zero
		if t, ok := fig.targets[fig.brands[i].ID]; ok {
			target = t
		}
		entries = append(entries, domain.TopBrandDTO{
			BrandName:   fig.brands[i].Name,
			TotalTarget: target,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalTarget.GreaterThan(entries[j].TotalTarget)
	})

	if len(entries) <= n {
		return entries, nil
	}

	other := decimal.Zero
	for _, e := range entries[n:] {
		other = other.Add(e.TotalTarget)
	}
	top := append(entries[:n:n], domain.TopBrandDTO{
		BrandName:   "Other",
		TotalTarget: other,
	})
	return top, nil
}

// StatusCounts returns opportunity counts per status for the current fiscal
// year, with every status present even at zero.
func (s *DashboardService) StatusCounts(ctx context.Context) ([]domain.StatusCountDTO, error) {
	year, err := s.yearRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCurrentFiscalYear
		}
		return nil, fmt.Errorf("failed to get current fiscal year: %w", err)
	}

	counts, err := s.oppRepo.CountByStatus(ctx, year.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count opportunities: %w", err)
	}

	byStatus := make(map[domain.OpportunityStatus]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}

	order := []domain.OpportunityStatus{
		domain.OpportunityStatusActive,
		domain.OpportunityStatusWon,
		domain.OpportunityStatusLost,
		domain.OpportunityStatusAbandoned,
		domain.OpportunityStatusExpired,
		domain.OpportunityStatusDisabled,
	}
	out := make([]domain.StatusCountDTO, 0, len(order))
	for _, status := range order {
		out = append(out, domain.StatusCountDTO{Status: status, Count: byStatus[status]})
	}
	return out, nil
}

// TimeRemaining reports how far through the current fiscal year we are. The
// fiscal year starts on day one of the configured start month of its calendar
// year and runs twelve months.
func (s *DashboardService) TimeRemaining(ctx context.Context, now time.Time) (*domain.TimeRemainingDTO, error) {
	year, err := s.yearRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCurrentFiscalYear
		}
		return nil, fmt.Errorf("failed to get current fiscal year: %w", err)
	}

	now = now.UTC()
	start := time.Date(year.Year, time.Month(s.startMonth), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	currentPeriod := int(now.Month()) - s.startMonth + 1
	if now.Year() > year.Year {
		currentPeriod += 12
	} else if now.Year() < year.Year {
		currentPeriod -= 12
	}
	if currentPeriod < 1 {
		currentPeriod = 1
	}
	if currentPeriod > 12 {
		currentPeriod = 12
	}

	daysRemaining := int(end.Sub(now).Hours() / 24)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	elapsed := now.Sub(start).Hours()
	span := end.Sub(start).Hours()
	percent := elapsed / span * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return &domain.TimeRemainingDTO{
		FiscalYear:       year.Year,
		CurrentPeriod:    currentPeriod,
		PeriodsRemaining: 12 - currentPeriod,
		DaysRemaining:    daysRemaining,
		PercentElapsed:   percent,
	}, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// quarterPeriods maps a fiscal quarter to its period numbers
var quarterPeriods = map[int][]int{
	1: {1, 2, 3},
	2: {4, 5, 6},
	3: {7, 8, 9},
	4: {10, 11, 12},
}

// RevenueSummary holds the aggregated revenue sums for one opportunity
type RevenueSummary struct {
	OpportunityID uuid.UUID
	Total         decimal.Decimal
	Q1            decimal.Decimal
	Q2            decimal.Decimal
	Q3            decimal.Decimal
	Q4            decimal.Decimal
}

type PerformanceRepository struct {
	db *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

// GetOrCreate returns the performance anchor for an opportunity and fiscal
// year, creating it when missing.
func (r *PerformanceRepository) GetOrCreate(ctx context.Context, opportunityID, fiscalYearID uuid.UUID) (*domain.OpportunityPerformance, error) {
	var perf domain.OpportunityPerformance
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ? AND fiscal_year_id = ?", opportunityID, fiscalYearID).
		First(&perf).Error
	if err == nil {
		return &perf, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	perf = domain.OpportunityPerformance{
		OpportunityID: opportunityID,
		FiscalYearID:  fiscalYearID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&perf).Error; err != nil {
		return nil, err
	}
	return &perf, nil
}

func (r *PerformanceRepository) GetByOpportunity(ctx context.Context, opportunityID, fiscalYearID uuid.UUID) (*domain.OpportunityPerformance, error) {
	var perf domain.OpportunityPerformance
	err := r.db.WithContext(ctx).
		Preload("Periods").
		Where("opportunity_id = ? AND fiscal_year_id = ?", opportunityID, fiscalYearID).
		First(&perf).Error
	if err != nil {
		return nil, err
	}
	return &perf, nil
}

// UpsertPeriod writes the revenue for one fiscal period, replacing any value
// already recorded for it.
func (r *PerformanceRepository) UpsertPeriod(ctx context.Context, perf *domain.OpportunityPerformance, period int, revenue decimal.Decimal, currency string) (*domain.PeriodPerformance, error) {
	var row domain.PeriodPerformance
	err := r.db.WithContext(ctx).
		Where("performance_id = ? AND period = ?", perf.ID, period).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		row = domain.PeriodPerformance{
			PerformanceID: perf.ID,
			Period:        period,
			Revenue:       revenue,
			Currency:      currency,
			FiscalYearID:  perf.FiscalYearID,
		}
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}

	row.Revenue = revenue
	row.Currency = currency
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// TotalRevenue sums every period of a performance. No rows means zero.
func (r *PerformanceRepository) TotalRevenue(ctx context.Context, performanceID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&domain.PeriodPerformance{}).
		Where("performance_id = ?", performanceID).
		Select("COALESCE(SUM(revenue), 0)").
		Scan(&total).Error
	return total, err
}

// QuarterlyRevenue sums one fiscal quarter of a performance. An invalid
// quarter sums nothing and returns zero.
func (r *PerformanceRepository) QuarterlyRevenue(ctx context.Context, performanceID uuid.UUID, quarter int) (decimal.Decimal, error) {
	periods, ok := quarterPeriods[quarter]
	if !ok {
		return decimal.Zero, nil
	}
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&domain.PeriodPerformance{}).
		Where("performance_id = ? AND period IN ?", performanceID, periods).
		Select("COALESCE(SUM(revenue), 0)").
		Scan(&total).Error
	return total, err
}

// RevenueByOpportunity produces per-opportunity total and quarterly sums for
// one fiscal year in a single grouped query. Opportunities without recorded
// revenue are absent from the result; callers fill in zeros.
func (r *PerformanceRepository) RevenueByOpportunity(ctx context.Context, opportunityIDs []uuid.UUID, fiscalYearID uuid.UUID) (map[uuid.UUID]RevenueSummary, error) {
	result := make(map[uuid.UUID]RevenueSummary, len(opportunityIDs))
	if len(opportunityIDs) == 0 {
		return result, nil
	}

	var rows []RevenueSummary
	err := r.db.WithContext(ctx).
		Table("period_performances").
		Select(`opportunity_performances.opportunity_id AS opportunity_id,
			COALESCE(SUM(period_performances.revenue), 0) AS total,
			COALESCE(SUM(CASE WHEN period_performances.period BETWEEN 1 AND 3 THEN period_performances.revenue ELSE 0 END), 0) AS q1,
			COALESCE(SUM(CASE WHEN period_performances.period BETWEEN 4 AND 6 THEN period_performances.revenue ELSE 0 END), 0) AS q2,
			COALESCE(SUM(CASE WHEN period_performances.period BETWEEN 7 AND 9 THEN period_performances.revenue ELSE 0 END), 0) AS q3,
			COALESCE(SUM(CASE WHEN period_performances.period BETWEEN 10 AND 12 THEN period_performances.revenue ELSE 0 END), 0) AS q4`).
		Joins("JOIN opportunity_performances ON opportunity_performances.id = period_performances.performance_id").
		Where("opportunity_performances.opportunity_id IN ?", opportunityIDs).
		Where("opportunity_performances.fiscal_year_id = ?", fiscalYearID).
		Group("opportunity_performances.opportunity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.OpportunityID] = row
	}
	return result, nil
}

// RevenueByBrand sums recorded revenue per brand for one fiscal year. Only
// active and won opportunities count; this feeds the growth classification
// and its portfolio denominator.
func (r *PerformanceRepository) RevenueByBrand(ctx context.Context, brandIDs []uuid.UUID, fiscalYearID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	result := make(map[uuid.UUID]decimal.Decimal, len(brandIDs))
	if len(brandIDs) == 0 {
		return result, nil
	}

	type brandRevenue struct {
		BrandID uuid.UUID
		Total   decimal.Decimal
	}

	var rows []brandRevenue
	err := r.db.WithContext(ctx).
		Table("period_performances").
		Select("opportunities.brand_id AS brand_id, COALESCE(SUM(period_performances.revenue), 0) AS total").
		Joins("JOIN opportunity_performances ON opportunity_performances.id = period_performances.performance_id").
		Joins("JOIN opportunities ON opportunities.id = opportunity_performances.opportunity_id").
		Where("opportunities.brand_id IN ?", brandIDs).
		Where("opportunity_performances.fiscal_year_id = ?", fiscalYearID).
		Where("opportunities.status IN ?", []domain.OpportunityStatus{
			domain.OpportunityStatusActive,
			domain.OpportunityStatusWon,
		}).
		Group("opportunities.brand_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.BrandID] = row.Total
	}
	return result, nil
}

// TargetByBrand sums opportunity targets per brand for one fiscal year,
// regardless of status.
func (r *PerformanceRepository) TargetByBrand(ctx context.Context, brandIDs []uuid.UUID, fiscalYearID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	result := make(map[uuid.UUID]decimal.Decimal, len(brandIDs))
	if len(brandIDs) == 0 {
		return result, nil
	}

	type brandTarget struct {
		BrandID uuid.UUID
		Total   decimal.Decimal
	}

	var rows []brandTarget
	err := r.db.WithContext(ctx).Model(&domain.Opportunity{}).
		Select("brand_id AS brand_id, COALESCE(SUM(target), 0) AS total").
		Where("brand_id IN ?", brandIDs).
		Where("fiscal_year_id = ?", fiscalYearID).
		Group("brand_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.BrandID] = row.Total
	}
	return result, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OpportunityFilters contains filter options for listing opportunities
type OpportunityFilters struct {
	FiscalYearID *uuid.UUID
	BrandID      *uuid.UUID
	ProductID    *uuid.UUID
	Statuses     []domain.OpportunityStatus
	Approved     *bool
}

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, opp *domain.Opportunity) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(opp).Error
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	var opp domain.Opportunity
	query := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("BusinessUnit").
		Preload("Product").
		Preload("FiscalYear").
		Where("id = ?", id)
	query = ApplyOpportunityScope(ctx, query)
	err := query.First(&opp).Error
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

func (r *OpportunityRepository) Update(ctx context.Context, opp *domain.Opportunity) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(opp).Error
}

func (r *OpportunityRepository) List(ctx context.Context, page, pageSize int, filters *OpportunityFilters) ([]domain.Opportunity, int64, error) {
	var opps []domain.Opportunity
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Opportunity{}).
		Preload("Brand").
		Preload("BusinessUnit").
		Preload("Product").
		Preload("FiscalYear")
	query = ApplyOpportunityScope(ctx, query)
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&opps).Error
	return opps, total, err
}

// ListScoped returns every opportunity in the caller's scope matching the
// filters, unpaginated. Dashboard rollups run over this set.
func (r *OpportunityRepository) ListScoped(ctx context.Context, filters *OpportunityFilters) ([]domain.Opportunity, error) {
	var opps []domain.Opportunity
	query := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("FiscalYear")
	query = ApplyOpportunityScope(ctx, query)
	query = r.applyFilters(query, filters)
	err := query.Find(&opps).Error
	return opps, err
}

// ExistsForKey checks the (brand, business unit, product, fiscal year)
// uniqueness constraint ahead of a write for a friendlier conflict error.
// excludeID skips one row, so an update does not collide with itself.
func (r *OpportunityRepository) ExistsForKey(ctx context.Context, brandID uuid.UUID, businessUnitID *uuid.UUID, productID, fiscalYearID, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Opportunity{}).
		Where("brand_id = ? AND product_id = ? AND fiscal_year_id = ?", brandID, productID, fiscalYearID)
	if businessUnitID != nil {
		query = query.Where("business_unit_id = ?", *businessUnitID)
	} else {
		query = query.Where("business_unit_id IS NULL")
	}
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountByStatus returns opportunity counts grouped by status within the
// caller's scope for a fiscal year.
func (r *OpportunityRepository) CountByStatus(ctx context.Context, fiscalYearID uuid.UUID) ([]domain.StatusCountDTO, error) {
	var results []domain.StatusCountDTO
	query := r.db.WithContext(ctx).Model(&domain.Opportunity{}).
		Select("status, COUNT(*) as count").
		Where("fiscal_year_id = ?", fiscalYearID).
		Group("status")
	query = ApplyOpportunityScope(ctx, query)
	err := query.Scan(&results).Error
	return results, err
}

// ListActiveForExpiredYears returns active opportunities whose fiscal year is
// no longer current. The expiry sweep feeds these through the lifecycle path.
func (r *OpportunityRepository) ListActiveForExpiredYears(ctx context.Context) ([]domain.Opportunity, error) {
	var opps []domain.Opportunity
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.OpportunityStatusActive).
		Where("fiscal_year_id IN (SELECT id FROM fiscal_years WHERE is_current = ?)", false).
		Find(&opps).Error
	return opps, err
}

// WithTransaction executes operations within a transaction
func (r *OpportunityRepository) WithTransaction(ctx context.Context, fn func(*gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *OpportunityRepository) applyFilters(query *gorm.DB, filters *OpportunityFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.FiscalYearID != nil {
		query = query.Where("fiscal_year_id = ?", *filters.FiscalYearID)
	}
	if filters.BrandID != nil {
		query = query.Where("brand_id = ?", *filters.BrandID)
	}
	if filters.ProductID != nil {
		query = query.Where("product_id = ?", *filters.ProductID)
	}
	if len(filters.Statuses) > 0 {
		query = query.Where("status IN ?", filters.Statuses)
	}
	if filters.Approved != nil {
		query = query.Where("approved = ?", *filters.Approved)
	}
	return query
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BrandFilters contains filter options for listing brands
type BrandFilters struct {
	Status   *domain.EntityStatus
	AgencyID *uuid.UUID
	UserID   *uuid.UUID
}

type BrandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

func (r *BrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(brand).Error
}

// CreateWithDefaultUnit creates a brand together with its default business
// unit in one transaction.
func (r *BrandRepository) CreateWithDefaultUnit(ctx context.Context, brand *domain.Brand) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(brand).Error; err != nil {
			return err
		}
		unit := &domain.BrandBusinessUnit{
			Name:    domain.DefaultBusinessUnitName,
			Status:  domain.StatusActive,
			BrandID: brand.ID,
			UserID:  &brand.UserID,
		}
		return tx.Omit(clause.Associations).Create(unit).Error
	})
}

func (r *BrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	var brand domain.Brand
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Agency").
		Preload("OrgBusinessUnit").
		Where("id = ?", id)
	query = ApplyBrandScope(ctx, query)
	err := query.First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *BrandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(brand).Error
}

func (r *BrandRepository) List(ctx context.Context, page, pageSize int, filters *BrandFilters) ([]domain.Brand, int64, error) {
	var brands []domain.Brand
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Brand{}).
		Preload("User").
		Preload("Agency").
		Preload("OrgBusinessUnit")
	query = ApplyBrandScope(ctx, query)
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&brands).Error
	return brands, total, err
}

// ListScoped returns every brand in the caller's scope, unpaginated.
// Dashboard aggregation runs over this set.
func (r *BrandRepository) ListScoped(ctx context.Context) ([]domain.Brand, error) {
	var brands []domain.Brand
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Agency").
		Where("status = ?", domain.StatusActive)
	query = ApplyBrandScope(ctx, query)
	err := query.Order("name ASC").Find(&brands).Error
	return brands, err
}

// ScopedBrandIDs returns the ids of all brands visible to the caller
func (r *BrandRepository) ScopedBrandIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := r.db.WithContext(ctx).Model(&domain.Brand{}).Select("id")
	query = ApplyBrandScope(ctx, query)
	err := query.Scan(&ids).Error
	return ids, err
}

func (r *BrandRepository) applyFilters(query *gorm.DB, filters *BrandFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.AgencyID != nil {
		query = query.Where("agency_id = ?", *filters.AgencyID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	return query
}

// BrandBusinessUnitRepository persists client-side business units
type BrandBusinessUnitRepository struct {
	db *gorm.DB
}

func NewBrandBusinessUnitRepository(db *gorm.DB) *BrandBusinessUnitRepository {
	return &BrandBusinessUnitRepository{db: db}
}

func (r *BrandBusinessUnitRepository) Create(ctx context.Context, unit *domain.BrandBusinessUnit) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(unit).Error
}

func (r *BrandBusinessUnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BrandBusinessUnit, error) {
	var unit domain.BrandBusinessUnit
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *BrandBusinessUnitRepository) Update(ctx context.Context, unit *domain.BrandBusinessUnit) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(unit).Error
}

func (r *BrandBusinessUnitRepository) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]domain.BrandBusinessUnit, error) {
	var units []domain.BrandBusinessUnit
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("brand_id = ?", brandID).
		Order("name ASC").
		Find(&units).Error
	return units, err
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrgBusinessUnitRepository struct {
	db *gorm.DB
}

func NewOrgBusinessUnitRepository(db *gorm.DB) *OrgBusinessUnitRepository {
	return &OrgBusinessUnitRepository{db: db}
}

func (r *OrgBusinessUnitRepository) Create(ctx context.Context, unit *domain.OrgBusinessUnit) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(unit).Error
}

func (r *OrgBusinessUnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrgBusinessUnit, error) {
	var unit domain.OrgBusinessUnit
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("id = ?", id).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *OrgBusinessUnitRepository) Update(ctx context.Context, unit *domain.OrgBusinessUnit) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(unit).Error
}

func (r *OrgBusinessUnitRepository) List(ctx context.Context, page, pageSize int) ([]domain.OrgBusinessUnit, int64, error) {
	var units []domain.OrgBusinessUnit
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.OrgBusinessUnit{}).Preload("Manager")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&units).Error
	return units, total, err
}

// GetManagedBy returns the org business units managed by a user
func (r *OrgBusinessUnitRepository) GetManagedBy(ctx context.Context, managerID uuid.UUID) ([]domain.OrgBusinessUnit, error) {
	var units []domain.OrgBusinessUnit
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("name ASC").
		Find(&units).Error
	return units, err
}

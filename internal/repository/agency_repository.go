package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MediaGroupRepository persists media groups
type MediaGroupRepository struct {
	db *gorm.DB
}

func NewMediaGroupRepository(db *gorm.DB) *MediaGroupRepository {
	return &MediaGroupRepository{db: db}
}

func (r *MediaGroupRepository) Create(ctx context.Context, group *domain.MediaGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *MediaGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MediaGroup, error) {
	var group domain.MediaGroup
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *MediaGroupRepository) Update(ctx context.Context, group *domain.MediaGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *MediaGroupRepository) List(ctx context.Context, page, pageSize int) ([]domain.MediaGroup, int64, error) {
	var groups []domain.MediaGroup
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.MediaGroup{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&groups).Error
	return groups, total, err
}

// AgencyRepository persists agencies
type AgencyRepository struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

func (r *AgencyRepository) Create(ctx context.Context, agency *domain.Agency) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(agency).Error
}

func (r *AgencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error) {
	var agency domain.Agency
	err := r.db.WithContext(ctx).
		Preload("MediaGroup").
		Where("id = ?", id).
		First(&agency).Error
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *AgencyRepository) Update(ctx context.Context, agency *domain.Agency) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(agency).Error
}

func (r *AgencyRepository) List(ctx context.Context, page, pageSize int) ([]domain.Agency, int64, error) {
	var agencies []domain.Agency
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Agency{}).Preload("MediaGroup")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&agencies).Error
	return agencies, total, err
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/mapper"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BrandService struct {
	brandRepo  *repository.BrandRepository
	unitRepo   *repository.BrandBusinessUnitRepository
	agencyRepo *repository.AgencyRepository
	orgRepo    *repository.OrgBusinessUnitRepository
	userRepo   *repository.UserRepository
	logger     *zap.Logger
}

func NewBrandService(
	brandRepo *repository.BrandRepository,
	unitRepo *repository.BrandBusinessUnitRepository,
	agencyRepo *repository.AgencyRepository,
	orgRepo *repository.OrgBusinessUnitRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *BrandService {
	return &BrandService{
		brandRepo:  brandRepo,
		unitRepo:   unitRepo,
		agencyRepo: agencyRepo,
		orgRepo:    orgRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Create creates a brand together with its default business unit. The default
// unit inherits the brand's owner.
func (s *BrandService) Create(ctx context.Context, req *domain.CreateBrandRequest) (*domain.BrandDTO, error) {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: owner", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify owner: %w", err)
	}
	if _, err := s.orgRepo.GetByID(ctx, req.OrgBusinessUnitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: org business unit", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify org business unit: %w", err)
	}
	if req.AgencyID != nil {
		if _, err := s.agencyRepo.GetByID(ctx, *req.AgencyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: agency", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to verify agency: %w", err)
		}
	}

	brand := &domain.Brand{
		Name:              req.Name,
		Description:       req.Description,
		Status:            statusOrActive(req.Status),
		UserID:            req.UserID,
		AgencyID:          req.AgencyID,
		OrgBusinessUnitID: req.OrgBusinessUnitID,
	}
	if err := s.brandRepo.CreateWithDefaultUnit(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	s.logger.Info("brand created",
		zap.String("brand_id", brand.ID.String()),
		zap.String("name", brand.Name),
	)

	brand, err := s.brandRepo.GetByID(ctx, brand.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload brand: %w", err)
	}
	dto := mapper.ToBrandDTO(brand)
	return &dto, nil
}

func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BrandDTO, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	dto := mapper.ToBrandDTO(brand)
	return &dto, nil
}

func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateBrandRequest) (*domain.BrandDTO, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	if _, err := s.orgRepo.GetByID(ctx, req.OrgBusinessUnitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: org business unit", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify org business unit: %w", err)
	}

	brand.Name = req.Name
	brand.Description = req.Description
	brand.UserID = req.UserID
	brand.AgencyID = req.AgencyID
	brand.OrgBusinessUnitID = req.OrgBusinessUnitID
	if req.Status != "" {
		brand.Status = req.Status
	}

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	brand, err = s.brandRepo.GetByID(ctx, brand.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload brand: %w", err)
	}
	dto := mapper.ToBrandDTO(brand)
	return &dto, nil
}

func (s *BrandService) List(ctx context.Context, page, pageSize int, filters *repository.BrandFilters) (*domain.PaginatedResponse, error) {
	brands, total, err := s.brandRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	dtos := make([]domain.BrandDTO, len(brands))
	for i := range brands {
		dtos[i] = mapper.ToBrandDTO(&brands[i])
	}
	return paginate(dtos, total, page, pageSize), nil
}

// CreateBusinessUnit adds a client-side business unit to a brand. The unit
// owner defaults to the brand's owner when unset.
func (s *BrandService) CreateBusinessUnit(ctx context.Context, brandID uuid.UUID, req *domain.CreateBrandBusinessUnitRequest) (*domain.BrandBusinessUnitDTO, error) {
	brand, err := s.brandRepo.GetByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	userID := req.UserID
	if userID == nil {
		userID = &brand.UserID
	}

	unit := &domain.BrandBusinessUnit{
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.StatusActive,
		BrandID:     brand.ID,
		UserID:      userID,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to create business unit: %w", err)
	}
	dto := mapper.ToBrandBusinessUnitDTO(unit)
	return &dto, nil
}

func (s *BrandService) UpdateBusinessUnit(ctx context.Context, brandID, unitID uuid.UUID, req *domain.UpdateBrandBusinessUnitRequest) (*domain.BrandBusinessUnitDTO, error) {
	if _, err := s.brandRepo.GetByID(ctx, brandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business unit: %w", err)
	}
	if unit.BrandID != brandID {
		return nil, ErrNotFound
	}

	unit.Name = req.Name
	unit.Description = req.Description
	unit.UserID = req.UserID
	if req.Status != "" {
		unit.Status = req.Status
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to update business unit: %w", err)
	}
	dto := mapper.ToBrandBusinessUnitDTO(unit)
	return &dto, nil
}

func (s *BrandService) ListBusinessUnits(ctx context.Context, brandID uuid.UUID) ([]domain.BrandBusinessUnitDTO, error) {
	if _, err := s.brandRepo.GetByID(ctx, brandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	units, err := s.unitRepo.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list business units: %w", err)
	}

	dtos := make([]domain.BrandBusinessUnitDTO, len(units))
	for i := range units {
		dtos[i] = mapper.ToBrandBusinessUnitDTO(&units[i])
	}
	return dtos, nil
}

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

type OrgBusinessUnitService struct {
	unitRepo *repository.OrgBusinessUnitRepository
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewOrgBusinessUnitService(
	unitRepo *repository.OrgBusinessUnitRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *OrgBusinessUnitService {
	return &OrgBusinessUnitService{
		unitRepo: unitRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// checkManager verifies the manager exists and holds a role allowed to run a
// business unit.
func (s *OrgBusinessUnitService) checkManager(ctx context.Context, managerID uuid.UUID) error {
	manager, err := s.userRepo.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: manager", ErrNotFound)
		}
		return fmt.Errorf("failed to verify manager: %w", err)
	}
	if !manager.Role.CanManageBusinessUnit() {
		return ErrManagerRole
	}
	return nil
}

func (s *OrgBusinessUnitService) Create(ctx context.Context, req *domain.CreateOrgBusinessUnitRequest) (*domain.OrgBusinessUnitDTO, error) {
	if err := s.checkManager(ctx, req.ManagerID); err != nil {
		return nil, err
	}

	unit := &domain.OrgBusinessUnit{
		Name:      req.Name,
		ManagerID: req.ManagerID,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to create business unit: %w", err)
	}

	unit, err := s.unitRepo.GetByID(ctx, unit.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload business unit: %w", err)
	}
	dto := mapper.ToOrgBusinessUnitDTO(unit)
	return &dto, nil
}

func (s *OrgBusinessUnitService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrgBusinessUnitDTO, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business unit: %w", err)
	}
	dto := mapper.ToOrgBusinessUnitDTO(unit)
	return &dto, nil
}

func (s *OrgBusinessUnitService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateOrgBusinessUnitRequest) (*domain.OrgBusinessUnitDTO, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business unit: %w", err)
	}

	if err := s.checkManager(ctx, req.ManagerID); err != nil {
		return nil, err
	}

	unit.Name = req.Name
	unit.ManagerID = req.ManagerID

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to update business unit: %w", err)
	}

	unit, err = s.unitRepo.GetByID(ctx, unit.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload business unit: %w", err)
	}
	dto := mapper.ToOrgBusinessUnitDTO(unit)
	return &dto, nil
}

func (s *OrgBusinessUnitService) List(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	units, total, err := s.unitRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list business units: %w", err)
	}

	dtos := make([]domain.OrgBusinessUnitDTO, len(units))
	for i := range units {
		dtos[i] = mapper.ToOrgBusinessUnitDTO(&units[i])
	}
	return paginate(dtos, total, page, pageSize), nil
}

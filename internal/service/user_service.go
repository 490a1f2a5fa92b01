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

type UserService struct {
	userRepo *repository.UserRepository
	orgRepo  *repository.OrgBusinessUnitRepository
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, orgRepo *repository.OrgBusinessUnitRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, orgRepo: orgRepo, logger: logger}
}

func (s *UserService) checkOrgUnit(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.orgRepo.GetByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: org business unit", ErrNotFound)
		}
		return fmt.Errorf("failed to verify org business unit: %w", err)
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserDTO, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: a user with email %s already exists", ErrConflict, req.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if err := s.checkOrgUnit(ctx, req.OrgBusinessUnitID); err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:             req.Email,
		DisplayName:       req.DisplayName,
		Role:              req.Role,
		OrgBusinessUnitID: req.OrgBusinessUnitID,
		IsActive:          true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.checkOrgUnit(ctx, req.OrgBusinessUnitID); err != nil {
		return nil, err
	}

	user.DisplayName = req.DisplayName
	user.Role = req.Role
	user.OrgBusinessUnitID = req.OrgBusinessUnitID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *UserService) List(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := make([]domain.UserDTO, len(users))
	for i := range users {
		dtos[i] = mapper.ToUserDTO(&users[i])
	}
	return paginate(dtos, total, page, pageSize), nil
}

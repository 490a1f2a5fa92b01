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

type AgencyService struct {
	agencyRepo     *repository.AgencyRepository
	mediaGroupRepo *repository.MediaGroupRepository
	logger         *zap.Logger
}

func NewAgencyService(
	agencyRepo *repository.AgencyRepository,
	mediaGroupRepo *repository.MediaGroupRepository,
	logger *zap.Logger,
) *AgencyService {
	return &AgencyService{
		agencyRepo:     agencyRepo,
		mediaGroupRepo: mediaGroupRepo,
		logger:         logger,
	}
}

func (s *AgencyService) CreateMediaGroup(ctx context.Context, req *domain.CreateMediaGroupRequest) (*domain.MediaGroupDTO, error) {
	group := &domain.MediaGroup{
		Name:        req.Name,
		Description: req.Description,
		Status:      statusOrActive(req.Status),
	}
	if err := s.mediaGroupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create media group: %w", err)
	}
	dto := mapper.ToMediaGroupDTO(group)
	return &dto, nil
}

func (s *AgencyService) GetMediaGroup(ctx context.Context, id uuid.UUID) (*domain.MediaGroupDTO, error) {
	group, err := s.mediaGroupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get media group: %w", err)
	}
	dto := mapper.ToMediaGroupDTO(group)
	return &dto, nil
}

func (s *AgencyService) UpdateMediaGroup(ctx context.Context, id uuid.UUID, req *domain.UpdateMediaGroupRequest) (*domain.MediaGroupDTO, error) {
	group, err := s.mediaGroupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get media group: %w", err)
	}

	group.Name = req.Name
	group.Description = req.Description
	if req.Status != "" {
		group.Status = req.Status
	}

	if err := s.mediaGroupRepo.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update media group: %w", err)
	}
	dto := mapper.ToMediaGroupDTO(group)
	return &dto, nil
}

func (s *AgencyService) ListMediaGroups(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	groups, total, err := s.mediaGroupRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list media groups: %w", err)
	}

	dtos := make([]domain.MediaGroupDTO, len(groups))
	for i := range groups {
		dtos[i] = mapper.ToMediaGroupDTO(&groups[i])
	}
	return paginate(dtos, total, page, pageSize), nil
}

func (s *AgencyService) Create(ctx context.Context, req *domain.CreateAgencyRequest) (*domain.AgencyDTO, error) {
	if req.MediaGroupID != nil {
		if _, err := s.mediaGroupRepo.GetByID(ctx, *req.MediaGroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: media group", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to verify media group: %w", err)
		}
	}

	agency := &domain.Agency{
		Name:         req.Name,
		Description:  req.Description,
		Status:       statusOrActive(req.Status),
		MediaGroupID: req.MediaGroupID,
	}
	if err := s.agencyRepo.Create(ctx, agency); err != nil {
		return nil, fmt.Errorf("failed to create agency: %w", err)
	}

	agency, err := s.agencyRepo.GetByID(ctx, agency.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload agency: %w", err)
	}
	dto := mapper.ToAgencyDTO(agency)
	return &dto, nil
}

func (s *AgencyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AgencyDTO, error) {
	agency, err := s.agencyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agency: %w", err)
	}
	dto := mapper.ToAgencyDTO(agency)
	return &dto, nil
}

func (s *AgencyService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateAgencyRequest) (*domain.AgencyDTO, error) {
	agency, err := s.agencyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agency: %w", err)
	}

	if req.MediaGroupID != nil {
		if _, err := s.mediaGroupRepo.GetByID(ctx, *req.MediaGroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: media group", ErrNotFound)
			}
			return nil, fmt.Errorf("failed to verify media group: %w", err)
		}
	}

	agency.Name = req.Name
	agency.Description = req.Description
	agency.MediaGroupID = req.MediaGroupID
	if req.Status != "" {
		agency.Status = req.Status
	}

	if err := s.agencyRepo.Update(ctx, agency); err != nil {
		return nil, fmt.Errorf("failed to update agency: %w", err)
	}

	agency, err = s.agencyRepo.GetByID(ctx, agency.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload agency: %w", err)
	}
	dto := mapper.ToAgencyDTO(agency)
	return &dto, nil
}

func (s *AgencyService) List(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	agencies, total, err := s.agencyRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}

	dtos := make([]domain.AgencyDTO, len(agencies))
	for i := range agencies {
		dtos[i] = mapper.ToAgencyDTO(&agencies[i])
	}
	return paginate(dtos, total, page, pageSize), nil
}

func statusOrActive(status domain.EntityStatus) domain.EntityStatus {
	if status == "" {
		return domain.StatusActive
	}
	return status
}

func paginate(data interface{}, total int64, page, pageSize int) *domain.PaginatedResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &domain.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

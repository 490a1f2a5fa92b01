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

type FiscalYearService struct {
	yearRepo *repository.FiscalYearRepository
	logger   *zap.Logger
}

func NewFiscalYearService(yearRepo *repository.FiscalYearRepository, logger *zap.Logger) *FiscalYearService {
	return &FiscalYearService{yearRepo: yearRepo, logger: logger}
}

func (s *FiscalYearService) Create(ctx context.Context, req *domain.CreateFiscalYearRequest) (*domain.FiscalYearDTO, error) {
	if _, err := s.yearRepo.GetByYear(ctx, req.Year); err == nil {
		return nil, fmt.Errorf("%w: fiscal year %d already exists", ErrConflict, req.Year)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check fiscal year: %w", err)
	}

	year := &domain.FiscalYear{
		Year:      req.Year,
		IsCurrent: req.IsCurrent,
	}
	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, fmt.Errorf("failed to create fiscal year: %w", err)
	}
	dto := mapper.ToFiscalYearDTO(year)
	return &dto, nil
}

func (s *FiscalYearService) GetByID(ctx context.Context, id uuid.UUID) (*domain.FiscalYearDTO, error) {
	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get fiscal year: %w", err)
	}
	dto := mapper.ToFiscalYearDTO(year)
	return &dto, nil
}

// GetCurrent returns the fiscal year flagged current. Read fresh on every
// call; the flag can move between requests.
func (s *FiscalYearService) GetCurrent(ctx context.Context) (*domain.FiscalYearDTO, error) {
	year, err := s.yearRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCurrentFiscalYear
		}
		return nil, fmt.Errorf("failed to get current fiscal year: %w", err)
	}
	dto := mapper.ToFiscalYearDTO(year)
	return &dto, nil
}

func (s *FiscalYearService) List(ctx context.Context) ([]domain.FiscalYearDTO, error) {
	years, err := s.yearRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}

	dtos := make([]domain.FiscalYearDTO, len(years))
	for i := range years {
		dtos[i] = mapper.ToFiscalYearDTO(&years[i])
	}
	return dtos, nil
}

// SetCurrent makes the given year the single current fiscal year
func (s *FiscalYearService) SetCurrent(ctx context.Context, id uuid.UUID) (*domain.FiscalYearDTO, error) {
	if err := s.yearRepo.SetCurrent(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to set current fiscal year: %w", err)
	}

	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload fiscal year: %w", err)
	}

	s.logger.Info("current fiscal year changed", zap.Int("year", year.Year))

	dto := mapper.ToFiscalYearDTO(year)
	return &dto, nil
}

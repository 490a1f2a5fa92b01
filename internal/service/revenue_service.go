package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/mapper"
	"github.com/sosmedia/portfolio-api/internal/repository"
)

// RevenueService enriches opportunity collections with recorded revenue.
// Results are computed fresh on every call; nothing is cached.
type RevenueService struct {
	perfRepo *repository.PerformanceRepository
}

func NewRevenueService(perfRepo *repository.PerformanceRepository) *RevenueService {
	return &RevenueService{perfRepo: perfRepo}
}

// WithRevenue maps opportunities to DTOs carrying total and quarterly revenue
// for the given fiscal year. Opportunities without recorded revenue get
// explicit zeros, never missing fields.
func (s *RevenueService) WithRevenue(ctx context.Context, opps []domain.Opportunity, fiscalYearID uuid.UUID) ([]domain.OpportunityWithRevenueDTO, error) {
	ids := make([]uuid.UUID, len(opps))
	for i := range opps {
		ids[i] = opps[i].ID
	}

	sums, err := s.perfRepo.RevenueByOpportunity(ctx, ids, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	dtos := make([]domain.OpportunityWithRevenueDTO, len(opps))
	for i := range opps {
		dto := domain.OpportunityWithRevenueDTO{
			OpportunityDTO: mapper.ToOpportunityDTO(&opps[i]),
			TotalRevenue:   decimal.Zero,
			Q1Revenue:      decimal.Zero,
			Q2Revenue:      decimal.Zero,
			Q3Revenue:      decimal.Zero,
			Q4Revenue:      decimal.Zero,
		}
		if sum, ok := sums[opps[i].ID]; ok {
			dto.TotalRevenue = sum.Total
			dto.Q1Revenue = sum.Q1
			dto.Q2Revenue = sum.Q2
			dto.Q3Revenue = sum.Q3
			dto.Q4Revenue = sum.Q4
		}
		dtos[i] = dto
	}
	return dtos, nil
}

// TotalRevenue returns the summed revenue of one opportunity's performance in
// a fiscal year, zero when nothing is recorded.
func (s *RevenueService) TotalRevenue(ctx context.Context, opportunityID, fiscalYearID uuid.UUID) (decimal.Decimal, error) {
	sums, err := s.perfRepo.RevenueByOpportunity(ctx, []uuid.UUID{opportunityID}, fiscalYearID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	if sum, ok := sums[opportunityID]; ok {
		return sum.Total, nil
	}
	return decimal.Zero, nil
}

package service_test

import (
	"context"
	"testing"

	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"github.com/sosmedia/portfolio-api/internal/service"
	"github.com/sosmedia/portfolio-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFiscalYearService(t *testing.T) (*service.FiscalYearService, func(int, bool) *domain.FiscalYear) {
	db := testutil.SetupTestDB(t)
	svc := service.NewFiscalYearService(repository.NewFiscalYearRepository(db), zap.NewNop())
	seed := func(year int, current bool) *domain.FiscalYear {
		return testutil.CreateTestFiscalYear(t, db, year, current)
	}
	return svc, seed
}

func TestFiscalYearService_Create(t *testing.T) {
	svc, _ := newFiscalYearService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, &domain.CreateFiscalYearRequest{Year: 2026, IsCurrent: true})
	require.NoError(t, err)
	assert.Equal(t, 2026, dto.Year)
	assert.True(t, dto.IsCurrent)

	// Duplicate year is a conflict
	_, err = svc.Create(ctx, &domain.CreateFiscalYearRequest{Year: 2026})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestFiscalYearService_SetCurrentMovesFlag(t *testing.T) {
	svc, seed := newFiscalYearService(t)
	ctx := context.Background()

	seed(2025, true)
	next := seed(2026, false)

	dto, err := svc.SetCurrent(ctx, next.ID)
	require.NoError(t, err)
	assert.True(t, dto.IsCurrent)

	current, err := svc.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2026, current.Year)
}

func TestFiscalYearService_GetCurrentNoneFlagged(t *testing.T) {
	svc, seed := newFiscalYearService(t)
	seed(2026, false)

	_, err := svc.GetCurrent(context.Background())
	assert.ErrorIs(t, err, service.ErrNoCurrentFiscalYear)
}

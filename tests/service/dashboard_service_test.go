package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"github.com/sosmedia/portfolio-api/internal/service"
	"github.com/sosmedia/portfolio-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type dashFixture struct {
	db    *gorm.DB
	svc   *service.DashboardService
	year  *domain.FiscalYear
	prior *domain.FiscalYear
}

func newDashboardService(db *gorm.DB, startMonth int) *service.DashboardService {
	return service.NewDashboardService(
		repository.NewBrandRepository(db),
		repository.NewOpportunityRepository(db),
		repository.NewPerformanceRepository(db),
		repository.NewFiscalYearRepository(db),
		startMonth,
		zap.NewNop(),
	)
}

// Portfolio of four brands with a prior-year revenue of 1000:
//
//	Alpha  target 400, prior 100  -> game changer (400/1000 >= 30%)
//	Bravo  target 120, prior 900  -> open (shrinking but has prior revenue)
//	Chase  target 120, prior 100  -> real opportunity (20% growth)
//	Delta  no opportunity         -> wish
func setupDashFixture(t *testing.T) *dashFixture {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAccountManager)
	head := testutil.CreateTestUser(t, db, "head@example.com", domain.RoleBusinessUnitHead)
	orgUnit := testutil.CreateTestOrgUnit(t, db, "Media Sales", head.ID)
	product := testutil.CreateTestProduct(t, db, "Display")
	year := testutil.CreateTestFiscalYear(t, db, 2026, true)
	prior := testutil.CreateTestFiscalYear(t, db, 2025, false)

	perfRepo := repository.NewPerformanceRepository(db)
	record := func(t *testing.T, brand *domain.Brand, target, priorRevenue int64) {
		opp := testutil.CreateTestOpportunity(t, db, brand.Name+" Display", brand.ID, product.ID, year.ID)
		require.NoError(t, db.Model(&domain.Opportunity{}).
			Where("id = ?", opp.ID).
			Update("target", decimal.NewFromInt(target)).Error)
		if priorRevenue > 0 {
			perf, err := perfRepo.GetOrCreate(context.Background(), opp.ID, prior.ID)
			require.NoError(t, err)
			_, err = perfRepo.UpsertPeriod(context.Background(), perf, 1,
				decimal.NewFromInt(priorRevenue), domain.DefaultCurrency)
			require.NoError(t, err)
		}
	}

	record(t, testutil.CreateTestBrand(t, db, "Alpha", owner.ID, orgUnit.ID), 400, 100)
	record(t, testutil.CreateTestBrand(t, db, "Bravo", owner.ID, orgUnit.ID), 120, 900)
	record(t, testutil.CreateTestBrand(t, db, "Chase", owner.ID, orgUnit.ID), 120, 100)
	testutil.CreateTestBrand(t, db, "Delta", owner.ID, orgUnit.ID)

	return &dashFixture{
		db:    db,
		svc:   newDashboardService(db, 1),
		year:  year,
		prior: prior,
	}
}

func TestDashboardService_BrandTable(t *testing.T) {
	f := setupDashFixture(t)

	rows, err := f.svc.BrandTable(testutil.DirectorContext())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byName := make(map[string]domain.BrandDashboardRow, len(rows))
	for _, r := range rows {
		byName[r.BrandName] = r
	}

	assert.Equal(t, domain.BucketGameChanger, byName["Alpha"].Bucket)
	assert.True(t, byName["Alpha"].TotalTarget.Equal(decimal.NewFromInt(400)))
	assert.True(t, byName["Alpha"].PriorYearRevenue.Equal(decimal.NewFromInt(100)))

	assert.Equal(t, domain.BucketOpen, byName["Bravo"].Bucket)
	assert.Equal(t, domain.BucketRealOpportunity, byName["Chase"].Bucket)

	assert.Equal(t, domain.BucketWish, byName["Delta"].Bucket)
	assert.True(t, byName["Delta"].TotalTarget.IsZero())
	assert.True(t, byName["Delta"].PriorYearRevenue.IsZero())
}

func TestDashboardService_GrowSummary(t *testing.T) {
	f := setupDashFixture(t)

	summaries, err := f.svc.GrowSummary(testutil.DirectorContext())
	require.NoError(t, err)
	require.Len(t, summaries, 4)

	byBucket := make(map[domain.GrowBucket]domain.GrowBucketSummary, len(summaries))
	for _, s := range summaries {
		byBucket[s.Bucket] = s
	}

	assert.Equal(t, 1, byBucket[domain.BucketGameChanger].BrandCount)
	assert.True(t, byBucket[domain.BucketGameChanger].TotalTarget.Equal(decimal.NewFromInt(400)))

	assert.Equal(t, 1, byBucket[domain.BucketRealOpportunity].BrandCount)
	assert.Equal(t, 1, byBucket[domain.BucketOpen].BrandCount)
	assert.True(t, byBucket[domain.BucketOpen].PriorYearRevenue.Equal(decimal.NewFromInt(900)))

	// Delta has no target at all; it counts zero toward the bucket total
	assert.Equal(t, 1, byBucket[domain.BucketWish].BrandCount)
	assert.True(t, byBucket[domain.BucketWish].TotalTarget.IsZero())
}

func TestDashboardService_GrowSummaryScoped(t *testing.T) {
	f := setupDashFixture(t)

	// A user nobody recognizes sees an empty portfolio, not an error
	ctx := testutil.ContextWithUser(uuid.New(), domain.RoleNone)
	summaries, err := f.svc.GrowSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 4)
	for _, s := range summaries {
		assert.Zero(t, s.BrandCount)
		assert.True(t, s.TotalTarget.IsZero())
	}
}

func TestDashboardService_TopBrands(t *testing.T) {
	f := setupDashFixture(t)
	ctx := testutil.DirectorContext()

	top, err := f.svc.TopBrands(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, "Alpha", top[0].BrandName)
	assert.True(t, top[0].TotalTarget.Equal(decimal.NewFromInt(400)))
	assert.True(t, top[1].TotalTarget.Equal(decimal.NewFromInt(120)))

	// Everything past the cut folds into Other
	assert.Equal(t, "Other", top[2].BrandName)
	assert.True(t, top[2].TotalTarget.Equal(decimal.NewFromInt(120)))

	// Asking for more than exists returns them all, no Other entry
	top, err = f.svc.TopBrands(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, top, 4)
}

func TestDashboardService_StatusCounts(t *testing.T) {
	f := setupDashFixture(t)

	require.NoError(t, f.db.Model(&domain.Opportunity{}).
		Where("name = ?", "Alpha Display").
		Update("status", domain.OpportunityStatusWon).Error)

	counts, err := f.svc.StatusCounts(testutil.DirectorContext())
	require.NoError(t, err)
	require.Len(t, counts, 6)

	byStatus := make(map[domain.OpportunityStatus]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}

	// Every status is present, zeros included
	assert.Equal(t, int64(2), byStatus[domain.OpportunityStatusActive])
	assert.Equal(t, int64(1), byStatus[domain.OpportunityStatusWon])
	assert.Equal(t, int64(0), byStatus[domain.OpportunityStatusLost])
	assert.Equal(t, int64(0), byStatus[domain.OpportunityStatusAbandoned])
	assert.Equal(t, int64(0), byStatus[domain.OpportunityStatusExpired])
	assert.Equal(t, int64(0), byStatus[domain.OpportunityStatusDisabled])
}

func TestDashboardService_TimeRemaining(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestFiscalYear(t, db, 2026, true)
	ctx := testutil.DirectorContext()

	t.Run("calendar-aligned year", func(t *testing.T) {
		svc := newDashboardService(db, 1)
		now := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

		dto, err := svc.TimeRemaining(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 2026, dto.FiscalYear)
		assert.Equal(t, 4, dto.CurrentPeriod)
		assert.Equal(t, 8, dto.PeriodsRemaining)
		assert.Equal(t, 260, dto.DaysRemaining)
		assert.InDelta(t, 28.49, dto.PercentElapsed, 0.01)
	})

	t.Run("july start", func(t *testing.T) {
		svc := newDashboardService(db, 7)

		dto, err := svc.TimeRemaining(ctx, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 2, dto.CurrentPeriod)

		// The fiscal year crosses into the next calendar year
		dto, err = svc.TimeRemaining(ctx, time.Date(2027, 2, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 8, dto.CurrentPeriod)
	})

	t.Run("clamps outside the fiscal year", func(t *testing.T) {
		svc := newDashboardService(db, 1)

		before, err := svc.TimeRemaining(ctx, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 1, before.CurrentPeriod)
		assert.Equal(t, float64(0), before.PercentElapsed)

		after, err := svc.TimeRemaining(ctx, time.Date(2028, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 12, after.CurrentPeriod)
		assert.Equal(t, float64(100), after.PercentElapsed)
		assert.Equal(t, 0, after.DaysRemaining)
	})
}

func TestDashboardService_NoCurrentFiscalYear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newDashboardService(db, 1)

	_, err := svc.BrandTable(testutil.DirectorContext())
	assert.ErrorIs(t, err, service.ErrNoCurrentFiscalYear)
}

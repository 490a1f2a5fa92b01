package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"github.com/sosmedia/portfolio-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type perfFixture struct {
	db   *gorm.DB
	repo *repository.PerformanceRepository
	opp  *domain.Opportunity
	year *domain.FiscalYear
}

func setupPerfFixture(t *testing.T) *perfFixture {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAccountManager)
	head := testutil.CreateTestUser(t, db, "head@example.com", domain.RoleBusinessUnitHead)
	orgUnit := testutil.CreateTestOrgUnit(t, db, "Media Sales", head.ID)
	brand := testutil.CreateTestBrand(t, db, "Acme", owner.ID, orgUnit.ID)
	product := testutil.CreateTestProduct(t, db, "Display")
	year := testutil.CreateTestFiscalYear(t, db, 2026, true)
	opp := testutil.CreateTestOpportunity(t, db, "Acme Display", brand.ID, product.ID, year.ID)

	return &perfFixture{
		db:   db,
		repo: repository.NewPerformanceRepository(db),
		opp:  opp,
		year: year,
	}
}

func (f *perfFixture) record(t *testing.T, period int, revenue int64) {
	perf, err := f.repo.GetOrCreate(context.Background(), f.opp.ID, f.year.ID)
	require.NoError(t, err)
	_, err = f.repo.UpsertPeriod(context.Background(), perf, period, decimal.NewFromInt(revenue), domain.DefaultCurrency)
	require.NoError(t, err)
}

func TestPerformanceRepository_GetOrCreate(t *testing.T) {
	f := setupPerfFixture(t)

	perf, err := f.repo.GetOrCreate(context.Background(), f.opp.ID, f.year.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, perf.ID)

	again, err := f.repo.GetOrCreate(context.Background(), f.opp.ID, f.year.ID)
	require.NoError(t, err)
	assert.Equal(t, perf.ID, again.ID)
}

func TestPerformanceRepository_UpsertPeriodReplaces(t *testing.T) {
	f := setupPerfFixture(t)
	perf, err := f.repo.GetOrCreate(context.Background(), f.opp.ID, f.year.ID)
	require.NoError(t, err)

	row, err := f.repo.UpsertPeriod(context.Background(), perf, 3, decimal.NewFromInt(100), "ZAR")
	require.NoError(t, err)
	assert.Equal(t, 3, row.Period)
	assert.True(t, row.Revenue.Equal(decimal.NewFromInt(100)))

	// A second write for the same period replaces the figure, no extra row
	row, err = f.repo.UpsertPeriod(context.Background(), perf, 3, decimal.NewFromInt(250), "ZAR")
	require.NoError(t, err)
	assert.True(t, row.Revenue.Equal(decimal.NewFromInt(250)))

	var count int64
	require.NoError(t, f.db.Model(&domain.PeriodPerformance{}).
		Where("performance_id = ?", perf.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPerformanceRepository_TotalRevenue(t *testing.T) {
	f := setupPerfFixture(t)
	perf, err := f.repo.GetOrCreate(context.Background(), f.opp.ID, f.year.ID)
	require.NoError(t, err)

	// Nothing recorded yet reads as zero, not an error
	total, err := f.repo.TotalRevenue(context.Background(), perf.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	f.record(t, 1, 10)
	f.record(t, 2, 20)
	f.record(t, 3, 30)

	total, err = f.repo.TotalRevenue(context.Background(), perf.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(60)))
}

func TestPerformanceRepository_QuarterlyRevenue(t *testing.T) {
	f := setupPerfFixture(t)
	perf, err := f.repo.GetOrCreate(context.Background(), f.opp.ID, f.year.ID)
	require.NoError(t, err)

	f.record(t, 1, 10)
	f.record(t, 2, 20)
	f.record(t, 3, 30)
	f.record(t, 4, 100)
	f.record(t, 12, 500)

	q1, err := f.repo.QuarterlyRevenue(context.Background(), perf.ID, 1)
	require.NoError(t, err)
	assert.True(t, q1.Equal(decimal.NewFromInt(60)))

	q2, err := f.repo.QuarterlyRevenue(context.Background(), perf.ID, 2)
	require.NoError(t, err)
	assert.True(t, q2.Equal(decimal.NewFromInt(100)))

	q3, err := f.repo.QuarterlyRevenue(context.Background(), perf.ID, 3)
	require.NoError(t, err)
	assert.True(t, q3.IsZero())

	q4, err := f.repo.QuarterlyRevenue(context.Background(), perf.ID, 4)
	require.NoError(t, err)
	assert.True(t, q4.Equal(decimal.NewFromInt(500)))

	// Out-of-range quarter sums nothing
	bad, err := f.repo.QuarterlyRevenue(context.Background(), perf.ID, 5)
	require.NoError(t, err)
	assert.True(t, bad.IsZero())
}

func TestPerformanceRepository_RevenueByOpportunity(t *testing.T) {
	f := setupPerfFixture(t)

	f.record(t, 1, 10)
	f.record(t, 5, 20)
	f.record(t, 11, 30)

	// A second opportunity with no recorded revenue must be absent
	product := testutil.CreateTestProduct(t, f.db, "Audio")
	empty := testutil.CreateTestOpportunity(t, f.db, "Acme Audio", f.opp.BrandID, product.ID, f.year.ID)

	sums, err := f.repo.RevenueByOpportunity(context.Background(),
		[]uuid.UUID{f.opp.ID, empty.ID}, f.year.ID)
	require.NoError(t, err)

	sum, ok := sums[f.opp.ID]
	require.True(t, ok)
	assert.True(t, sum.Total.Equal(decimal.NewFromInt(60)))
	assert.True(t, sum.Q1.Equal(decimal.NewFromInt(10)))
	assert.True(t, sum.Q2.Equal(decimal.NewFromInt(20)))
	assert.True(t, sum.Q3.IsZero())
	assert.True(t, sum.Q4.Equal(decimal.NewFromInt(30)))

	_, ok = sums[empty.ID]
	assert.False(t, ok)
}

func TestPerformanceRepository_RevenueByBrandExcludesStatuses(t *testing.T) {
	f := setupPerfFixture(t)
	f.record(t, 1, 100)

	sums, err := f.repo.RevenueByBrand(context.Background(),
		[]uuid.UUID{f.opp.BrandID}, f.year.ID)
	require.NoError(t, err)
	assert.True(t, sums[f.opp.BrandID].Equal(decimal.NewFromInt(100)))

	// Won opportunities still count
	require.NoError(t, f.db.Model(&domain.Opportunity{}).
		Where("id = ?", f.opp.ID).
		Update("status", domain.OpportunityStatusWon).Error)

	sums, err = f.repo.RevenueByBrand(context.Background(),
		[]uuid.UUID{f.opp.BrandID}, f.year.ID)
	require.NoError(t, err)
	assert.True(t, sums[f.opp.BrandID].Equal(decimal.NewFromInt(100)))

	// Lost opportunities drop out of brand revenue
	require.NoError(t, f.db.Model(&domain.Opportunity{}).
		Where("id = ?", f.opp.ID).
		Update("status", domain.OpportunityStatusLost).Error)

	sums, err = f.repo.RevenueByBrand(context.Background(),
		[]uuid.UUID{f.opp.BrandID}, f.year.ID)
	require.NoError(t, err)
	_, ok := sums[f.opp.BrandID]
	assert.False(t, ok)
}

func TestPerformanceRepository_TargetByBrand(t *testing.T) {
	f := setupPerfFixture(t)

	require.NoError(t, f.db.Model(&domain.Opportunity{}).
		Where("id = ?", f.opp.ID).
		Update("target", decimal.NewFromInt(5000)).Error)

	targets, err := f.repo.TargetByBrand(context.Background(),
		[]uuid.UUID{f.opp.BrandID}, f.year.ID)
	require.NoError(t, err)
	assert.True(t, targets[f.opp.BrandID].Equal(decimal.NewFromInt(5000)))

	// Status does not change the target sum, only the fiscal year does
	require.NoError(t, f.db.Model(&domain.Opportunity{}).
		Where("id = ?", f.opp.ID).
		Update("status", domain.OpportunityStatusLost).Error)

	targets, err = f.repo.TargetByBrand(context.Background(),
		[]uuid.UUID{f.opp.BrandID}, f.year.ID)
	require.NoError(t, err)
	assert.True(t, targets[f.opp.BrandID].Equal(decimal.NewFromInt(5000)))

	otherYear := testutil.CreateTestFiscalYear(t, f.db, 2027, false)
	targets, err = f.repo.TargetByBrand(context.Background(),
		[]uuid.UUID{f.opp.BrandID}, otherYear.ID)
	require.NoError(t, err)
	_, ok := targets[f.opp.BrandID]
	assert.False(t, ok)
}

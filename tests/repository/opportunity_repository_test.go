package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"github.com/sosmedia/portfolio-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type oppFixture struct {
	db      *gorm.DB
	repo    *repository.OpportunityRepository
	owner   *domain.User
	other   *domain.User
	head    *domain.User
	brand   *domain.Brand
	foreign *domain.Brand
	product *domain.Product
	year    *domain.FiscalYear
}

// Two account managers with one brand each; the business unit head manages
// only the org unit holding the first brand.
func setupOppFixture(t *testing.T) *oppFixture {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAccountManager)
	other := testutil.CreateTestUser(t, db, "other@example.com", domain.RoleAccountManager)
	head := testutil.CreateTestUser(t, db, "head@example.com", domain.RoleBusinessUnitHead)
	director := testutil.CreateTestUser(t, db, "director@example.com", domain.RoleSalesDirector)

	managed := testutil.CreateTestOrgUnit(t, db, "Managed Unit", head.ID)
	unmanaged := testutil.CreateTestOrgUnit(t, db, "Other Unit", director.ID)

	brand := testutil.CreateTestBrand(t, db, "Acme", owner.ID, managed.ID)
	foreign := testutil.CreateTestBrand(t, db, "Globex", other.ID, unmanaged.ID)

	product := testutil.CreateTestProduct(t, db, "Display")
	year := testutil.CreateTestFiscalYear(t, db, 2026, true)

	testutil.CreateTestOpportunity(t, db, "Acme Display", brand.ID, product.ID, year.ID)
	testutil.CreateTestOpportunity(t, db, "Globex Display", foreign.ID, product.ID, year.ID)

	return &oppFixture{
		db:      db,
		repo:    repository.NewOpportunityRepository(db),
		owner:   owner,
		other:   other,
		head:    head,
		brand:   brand,
		foreign: foreign,
		product: product,
		year:    year,
	}
}

func TestOpportunityRepository_ListScopedByRole(t *testing.T) {
	f := setupOppFixture(t)

	t.Run("account manager sees own brands only", func(t *testing.T) {
		ctx := testutil.ContextWithUser(f.owner.ID, domain.RoleAccountManager)
		opps, err := f.repo.ListScoped(ctx, nil)
		require.NoError(t, err)
		require.Len(t, opps, 1)
		assert.Equal(t, f.brand.ID, opps[0].BrandID)
	})

	t.Run("business unit head sees managed units", func(t *testing.T) {
		ctx := testutil.ContextWithUser(f.head.ID, domain.RoleBusinessUnitHead)
		opps, err := f.repo.ListScoped(ctx, nil)
		require.NoError(t, err)
		require.Len(t, opps, 1)
		assert.Equal(t, f.brand.ID, opps[0].BrandID)
	})

	t.Run("sales director sees everything", func(t *testing.T) {
		opps, err := f.repo.ListScoped(testutil.DirectorContext(), nil)
		require.NoError(t, err)
		assert.Len(t, opps, 2)
	})

	t.Run("unknown role sees nothing", func(t *testing.T) {
		ctx := testutil.ContextWithUser(f.owner.ID, domain.Role("superuser"))
		opps, err := f.repo.ListScoped(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, opps)
	})

	t.Run("missing user context sees nothing", func(t *testing.T) {
		opps, err := f.repo.ListScoped(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, opps)
	})
}

func TestOpportunityRepository_GetByIDScoped(t *testing.T) {
	f := setupOppFixture(t)

	var foreignOpp domain.Opportunity
	require.NoError(t, f.db.Where("brand_id = ?", f.foreign.ID).First(&foreignOpp).Error)

	// Out of scope reads as not found, not forbidden
	ctx := testutil.ContextWithUser(f.owner.ID, domain.RoleAccountManager)
	_, err := f.repo.GetByID(ctx, foreignOpp.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := f.repo.GetByID(testutil.DirectorContext(), foreignOpp.ID)
	require.NoError(t, err)
	assert.Equal(t, foreignOpp.ID, found.ID)
}

func TestOpportunityRepository_ExistsForKey(t *testing.T) {
	f := setupOppFixture(t)
	ctx := testutil.DirectorContext()

	exists, err := f.repo.ExistsForKey(ctx, f.brand.ID, nil, f.product.ID, f.year.ID, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// The row itself does not collide when excluded
	var ownOpp domain.Opportunity
	require.NoError(t, f.db.Where("brand_id = ?", f.brand.ID).First(&ownOpp).Error)
	exists, err = f.repo.ExistsForKey(ctx, f.brand.ID, nil, f.product.ID, f.year.ID, ownOpp.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// A different business unit is a different key
	unit := &domain.BrandBusinessUnit{
		Name:    "Retail",
		Status:  domain.StatusActive,
		BrandID: f.brand.ID,
	}
	require.NoError(t, f.db.Create(unit).Error)

	exists, err = f.repo.ExistsForKey(ctx, f.brand.ID, &unit.ID, f.product.ID, f.year.ID, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)

	// So is a different fiscal year
	nextYear := testutil.CreateTestFiscalYear(t, f.db, 2027, false)
	exists, err = f.repo.ExistsForKey(ctx, f.brand.ID, nil, f.product.ID, nextYear.ID, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOpportunityRepository_ListFilters(t *testing.T) {
	f := setupOppFixture(t)
	ctx := testutil.DirectorContext()

	t.Run("filter by brand", func(t *testing.T) {
		opps, total, err := f.repo.List(ctx, 1, 10, &repository.OpportunityFilters{
			BrandID: &f.brand.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, opps, 1)
		assert.Equal(t, f.brand.ID, opps[0].BrandID)
	})

	t.Run("filter by status", func(t *testing.T) {
		opps, total, err := f.repo.List(ctx, 1, 10, &repository.OpportunityFilters{
			Statuses: []domain.OpportunityStatus{domain.OpportunityStatusWon},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, opps)
	})

	t.Run("filter by approved", func(t *testing.T) {
		approved := false
		_, total, err := f.repo.List(ctx, 1, 10, &repository.OpportunityFilters{
			Approved: &approved,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestOpportunityRepository_CountByStatus(t *testing.T) {
	f := setupOppFixture(t)

	require.NoError(t, f.db.Model(&domain.Opportunity{}).
		Where("brand_id = ?", f.foreign.ID).
		Update("status", domain.OpportunityStatusWon).Error)

	counts, err := f.repo.CountByStatus(testutil.DirectorContext(), f.year.ID)
	require.NoError(t, err)

	byStatus := make(map[domain.OpportunityStatus]int64)
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, int64(1), byStatus[domain.OpportunityStatusActive])
	assert.Equal(t, int64(1), byStatus[domain.OpportunityStatusWon])

	// Scoped counts exclude the other manager's brand
	ctx := testutil.ContextWithUser(f.owner.ID, domain.RoleAccountManager)
	counts, err = f.repo.CountByStatus(ctx, f.year.ID)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, domain.OpportunityStatusActive, counts[0].Status)
	assert.Equal(t, int64(1), counts[0].Count)
}

func TestOpportunityRepository_ListActiveForExpiredYears(t *testing.T) {
	f := setupOppFixture(t)

	// Current year opportunities are never stale
	stale, err := f.repo.ListActiveForExpiredYears(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stale)

	oldYear := testutil.CreateTestFiscalYear(t, f.db, 2025, false)
	testutil.CreateTestOpportunity(t, f.db, "Acme Display 2025", f.brand.ID, f.product.ID, oldYear.ID)

	stale, err = f.repo.ListActiveForExpiredYears(context.Background())
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, oldYear.ID, stale[0].FiscalYearID)
}

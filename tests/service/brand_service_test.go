package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"github.com/sosmedia/portfolio-api/internal/service"
	"github.com/sosmedia/portfolio-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type brandServiceFixture struct {
	db      *gorm.DB
	svc     *service.BrandService
	owner   *domain.User
	orgUnit *domain.OrgBusinessUnit
}

func setupBrandService(t *testing.T) *brandServiceFixture {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db, "owner@example.com", domain.RoleAccountManager)
	head := testutil.CreateTestUser(t, db, "head@example.com", domain.RoleBusinessUnitHead)
	orgUnit := testutil.CreateTestOrgUnit(t, db, "Media Sales", head.ID)

	svc := service.NewBrandService(
		repository.NewBrandRepository(db),
		repository.NewBrandBusinessUnitRepository(db),
		repository.NewAgencyRepository(db),
		repository.NewOrgBusinessUnitRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)

	return &brandServiceFixture{db: db, svc: svc, owner: owner, orgUnit: orgUnit}
}

func TestBrandService_CreateWithDefaultUnit(t *testing.T) {
	f := setupBrandService(t)
	ctx := testutil.DirectorContext()

	dto, err := f.svc.Create(ctx, &domain.CreateBrandRequest{
		Name:              "Acme",
		UserID:            f.owner.ID,
		OrgBusinessUnitID: f.orgUnit.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", dto.Name)
	assert.Equal(t, domain.StatusActive, dto.Status)
	assert.Equal(t, f.owner.ID, dto.UserID)

	// Every new brand comes with its default business unit, owned by the
	// brand owner
	units, err := f.svc.ListBusinessUnits(ctx, dto.ID)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, domain.DefaultBusinessUnitName, units[0].Name)
	require.NotNil(t, units[0].UserID)
	assert.Equal(t, f.owner.ID, *units[0].UserID)
}

func TestBrandService_CreateUnknownOwner(t *testing.T) {
	f := setupBrandService(t)

	_, err := f.svc.Create(testutil.DirectorContext(), &domain.CreateBrandRequest{
		Name:              "Acme",
		UserID:            uuid.New(),
		OrgBusinessUnitID: f.orgUnit.ID,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestBrandService_Update(t *testing.T) {
	f := setupBrandService(t)
	ctx := testutil.DirectorContext()

	dto, err := f.svc.Create(ctx, &domain.CreateBrandRequest{
		Name:              "Acme",
		UserID:            f.owner.ID,
		OrgBusinessUnitID: f.orgUnit.ID,
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, dto.ID, &domain.UpdateBrandRequest{
		Name:              "Acme Holdings",
		Description:       "Renamed",
		Status:            domain.StatusDisabled,
		UserID:            f.owner.ID,
		OrgBusinessUnitID: f.orgUnit.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", updated.Name)
	assert.Equal(t, domain.StatusDisabled, updated.Status)
}

func TestBrandService_BusinessUnits(t *testing.T) {
	f := setupBrandService(t)
	ctx := testutil.DirectorContext()

	brand, err := f.svc.Create(ctx, &domain.CreateBrandRequest{
		Name:              "Acme",
		UserID:            f.owner.ID,
		OrgBusinessUnitID: f.orgUnit.ID,
	})
	require.NoError(t, err)

	// Owner defaults to the brand owner when unset
	unit, err := f.svc.CreateBusinessUnit(ctx, brand.ID, &domain.CreateBrandBusinessUnitRequest{
		Name: "Retail",
	})
	require.NoError(t, err)
	assert.Equal(t, "Retail", unit.Name)
	require.NotNil(t, unit.UserID)
	assert.Equal(t, f.owner.ID, *unit.UserID)

	updated, err := f.svc.UpdateBusinessUnit(ctx, brand.ID, unit.ID, &domain.UpdateBrandBusinessUnitRequest{
		Name:   "Retail ZA",
		Status: domain.StatusDisabled,
	})
	require.NoError(t, err)
	assert.Equal(t, "Retail ZA", updated.Name)
	assert.Equal(t, domain.StatusDisabled, updated.Status)

	units, err := f.svc.ListBusinessUnits(ctx, brand.ID)
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestBrandService_UpdateBusinessUnitWrongBrand(t *testing.T) {
	f := setupBrandService(t)
	ctx := testutil.DirectorContext()

	first, err := f.svc.Create(ctx, &domain.CreateBrandRequest{
		Name:              "Acme",
		UserID:            f.owner.ID,
		OrgBusinessUnitID: f.orgUnit.ID,
	})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, &domain.CreateBrandRequest{
		Name:              "Globex",
		UserID:            f.owner.ID,
		OrgBusinessUnitID: f.orgUnit.ID,
	})
	require.NoError(t, err)

	unit, err := f.svc.CreateBusinessUnit(ctx, first.ID, &domain.CreateBrandBusinessUnitRequest{
		Name: "Retail",
	})
	require.NoError(t, err)

	// Addressing the unit through the wrong brand reads as not found
	_, err = f.svc.UpdateBusinessUnit(ctx, second.ID, unit.ID, &domain.UpdateBrandBusinessUnitRequest{
		Name: "Hijacked",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestBrandService_ScopedVisibility(t *testing.T) {
	f := setupBrandService(t)
	director := testutil.DirectorContext()

	other := testutil.CreateTestUser(t, f.db, "other@example.com", domain.RoleAccountManager)

	_, err := f.svc.Create(director, &domain.CreateBrandRequest{
		Name:              "Acme",
		UserID:            f.owner.ID,
		OrgBusinessUnitID: f.orgUnit.ID,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(director, &domain.CreateBrandRequest{
		Name:              "Globex",
		UserID:            other.ID,
		OrgBusinessUnitID: f.orgUnit.ID,
	})
	require.NoError(t, err)

	all, err := f.svc.List(director, 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	ownerCtx := testutil.ContextWithUser(f.owner.ID, domain.RoleAccountManager)
	own, err := f.svc.List(ownerCtx, 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), own.Total)
}

package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/auth"
	"github.com/sosmedia/portfolio-api/internal/database"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory sqlite database with the full schema. Each
// call gets its own database; MaxOpenConns is pinned to one so the in-memory
// store survives across the connection pool.
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// ContextWithUser returns a context carrying an authenticated user with the
// given role, the way the auth middleware populates it.
func ContextWithUser(userID uuid.UUID, role domain.Role) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      userID,
		DisplayName: "Test User",
		Email:       fmt.Sprintf("%s@example.com", userID),
		Role:        role,
	})
}

// DirectorContext returns a context for a sales director, who sees everything.
func DirectorContext() context.Context {
	return ContextWithUser(uuid.New(), domain.RoleSalesDirector)
}

// CreateTestUser inserts a user with the given role
func CreateTestUser(t *testing.T, db *gorm.DB, email string, role domain.Role) *domain.User {
	user := &domain.User{
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestOrgUnit inserts an org business unit managed by the given user
func CreateTestOrgUnit(t *testing.T, db *gorm.DB, name string, managerID uuid.UUID) *domain.OrgBusinessUnit {
	unit := &domain.OrgBusinessUnit{
		Name:      name,
		ManagerID: managerID,
	}
	require.NoError(t, db.Create(unit).Error)
	return unit
}

// CreateTestBrand inserts a brand owned by the given user in the given org unit
func CreateTestBrand(t *testing.T, db *gorm.DB, name string, ownerID, orgUnitID uuid.UUID) *domain.Brand {
	brand := &domain.Brand{
		Name:              name,
		Status:            domain.StatusActive,
		UserID:            ownerID,
		OrgBusinessUnitID: orgUnitID,
	}
	require.NoError(t, db.Create(brand).Error)
	return brand
}

// CreateTestProduct inserts an active product
func CreateTestProduct(t *testing.T, db *gorm.DB, name string) *domain.Product {
	product := &domain.Product{
		Name:   name,
		Status: domain.StatusActive,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// CreateTestFiscalYear inserts a fiscal year
func CreateTestFiscalYear(t *testing.T, db *gorm.DB, year int, isCurrent bool) *domain.FiscalYear {
	fy := &domain.FiscalYear{
		Year:      year,
		IsCurrent: isCurrent,
	}
	require.NoError(t, db.Create(fy).Error)
	return fy
}

// CreateTestOpportunity inserts an active opportunity
func CreateTestOpportunity(t *testing.T, db *gorm.DB, name string, brandID, productID, fiscalYearID uuid.UUID) *domain.Opportunity {
	opp := &domain.Opportunity{
		Name:           name,
		Status:         domain.OpportunityStatusActive,
		BrandID:        brandID,
		ProductID:      productID,
		FiscalYearID:   fiscalYearID,
		TargetCurrency: domain.DefaultCurrency,
	}
	require.NoError(t, db.Create(opp).Error)
	return opp
}

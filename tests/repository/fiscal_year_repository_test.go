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

func TestFiscalYearRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewFiscalYearRepository(db)

	year := &domain.FiscalYear{Year: 2026}
	err := repo.Create(context.Background(), year)
	assert.NoError(t, err)

	found, err := repo.GetByYear(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 2026, found.Year)
	assert.False(t, found.IsCurrent)
}

func TestFiscalYearRepository_CreateCurrentClearsOthers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewFiscalYearRepository(db)

	old := &domain.FiscalYear{Year: 2025, IsCurrent: true}
	require.NoError(t, repo.Create(context.Background(), old))

	next := &domain.FiscalYear{Year: 2026, IsCurrent: true}
	require.NoError(t, repo.Create(context.Background(), next))

	current, err := repo.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2026, current.Year)

	var count int64
	require.NoError(t, db.Model(&domain.FiscalYear{}).
		Where("is_current = ?", true).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFiscalYearRepository_SetCurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewFiscalYearRepository(db)

	y2025 := testutil.CreateTestFiscalYear(t, db, 2025, true)
	y2026 := testutil.CreateTestFiscalYear(t, db, 2026, false)

	err := repo.SetCurrent(context.Background(), y2026.ID)
	require.NoError(t, err)

	current, err := repo.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, y2026.ID, current.ID)

	old, err := repo.GetByID(context.Background(), y2025.ID)
	require.NoError(t, err)
	assert.False(t, old.IsCurrent)

	var count int64
	require.NoError(t, db.Model(&domain.FiscalYear{}).
		Where("is_current = ?", true).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFiscalYearRepository_SetCurrentUnknownID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewFiscalYearRepository(db)

	testutil.CreateTestFiscalYear(t, db, 2026, true)

	err := repo.SetCurrent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The existing current year must be untouched
	current, err := repo.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2026, current.Year)
}

func TestFiscalYearRepository_GetCurrentNoneFlagged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewFiscalYearRepository(db)

	testutil.CreateTestFiscalYear(t, db, 2026, false)

	_, err := repo.GetCurrent(context.Background())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFiscalYearRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewFiscalYearRepository(db)

	testutil.CreateTestFiscalYear(t, db, 2024, false)
	testutil.CreateTestFiscalYear(t, db, 2026, true)
	testutil.CreateTestFiscalYear(t, db, 2025, false)

	years, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, years, 3)
	assert.Equal(t, 2026, years[0].Year)
	assert.Equal(t, 2025, years[1].Year)
	assert.Equal(t, 2024, years[2].Year)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"gorm.io/gorm"
)

type FiscalYearRepository struct {
	db *gorm.DB
}

func NewFiscalYearRepository(db *gorm.DB) *FiscalYearRepository {
	return &FiscalYearRepository{db: db}
}

// Create inserts a fiscal year. When IsCurrent is set, every other year's
// current flag is cleared inside the same transaction.
func (r *FiscalYearRepository) Create(ctx context.Context, year *domain.FiscalYear) error {
	if !year.IsCurrent {
		return r.db.WithContext(ctx).Create(year).Error
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.FiscalYear{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		return tx.Create(year).Error
	})
}

func (r *FiscalYearRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FiscalYear, error) {
	var year domain.FiscalYear
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&year).Error
	if err != nil {
		return nil, err
	}
	return &year, nil
}

func (r *FiscalYearRepository) GetByYear(ctx context.Context, yr int) (*domain.FiscalYear, error) {
	var year domain.FiscalYear
	err := r.db.WithContext(ctx).Where("year = ?", yr).First(&year).Error
	if err != nil {
		return nil, err
	}
	return &year, nil
}

// GetCurrent returns the fiscal year flagged current. Always read from the
// database; the flag can change at any time.
func (r *FiscalYearRepository) GetCurrent(ctx context.Context) (*domain.FiscalYear, error) {
	var year domain.FiscalYear
	err := r.db.WithContext(ctx).Where("is_current = ?", true).First(&year).Error
	if err != nil {
		return nil, err
	}
	return &year, nil
}

func (r *FiscalYearRepository) List(ctx context.Context) ([]domain.FiscalYear, error) {
	var years []domain.FiscalYear
	err := r.db.WithContext(ctx).Order("year DESC").Find(&years).Error
	return years, err
}

// SetCurrent flags the given fiscal year as current and clears the flag on
// all other years in one transaction, keeping at most one current year.
func (r *FiscalYearRepository) SetCurrent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var year domain.FiscalYear
		if err := tx.Where("id = ?", id).First(&year).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.FiscalYear{}).
			Where("id <> ? AND is_current = ?", id, true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		return tx.Model(&domain.FiscalYear{}).
			Where("id = ?", id).
			Update("is_current", true).Error
	})
}

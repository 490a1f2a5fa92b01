package repository

import (
	"context"
	"strings"

	"github.com/sosmedia/portfolio-api/internal/auth"
	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries
type SortConfig struct {
	Field string
	Order SortOrder
}

// DefaultSortConfig returns a default sort configuration (updated_at DESC)
func DefaultSortConfig() SortConfig {
	return SortConfig{
		Field: "updatedAt",
		Order: SortOrderDesc,
	}
}

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// ApplyBrandScope restricts a query over the brands table to the caller's
// visibility scope. A user without a recognized role matches no rows at all
// (fail closed), never an error.
func ApplyBrandScope(ctx context.Context, query *gorm.DB) *gorm.DB {
	return applyScope(ctx, query, "id", "user_id", "org_business_unit_id")
}

// ApplyBrandScopeWithAlias is ApplyBrandScope with an explicit table alias,
// for joined queries.
func ApplyBrandScopeWithAlias(ctx context.Context, query *gorm.DB, alias string) *gorm.DB {
	return applyScope(ctx, query, alias+".id", alias+".user_id", alias+".org_business_unit_id")
}

// ApplyOpportunityScope restricts a query over the opportunities table to
// opportunities of brands visible to the caller.
func ApplyOpportunityScope(ctx context.Context, query *gorm.DB) *gorm.DB {
	scope := scopeFromContext(ctx)
	switch scope.Kind {
	case auth.ScopeAll:
		return query
	case auth.ScopeOwnBrands:
		return query.Where("brand_id IN (SELECT id FROM brands WHERE user_id = ?)", scope.UserID)
	case auth.ScopeManagedUnits:
		return query.Where(
			"brand_id IN (SELECT id FROM brands WHERE org_business_unit_id IN (SELECT id FROM org_business_units WHERE manager_id = ?))",
			scope.UserID)
	}
	return query.Where("1 = 0")
}

func applyScope(ctx context.Context, query *gorm.DB, idCol, userCol, unitCol string) *gorm.DB {
	scope := scopeFromContext(ctx)
	switch scope.Kind {
	case auth.ScopeAll:
		return query
	case auth.ScopeOwnBrands:
		return query.Where(userCol+" = ?", scope.UserID)
	case auth.ScopeManagedUnits:
		return query.Where(
			unitCol+" IN (SELECT id FROM org_business_units WHERE manager_id = ?)",
			scope.UserID)
	}
	return query.Where("1 = 0")
}

func scopeFromContext(ctx context.Context) auth.Scope {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return auth.Scope{Kind: auth.ScopeNone}
	}
	return auth.ResolveScope(user)
}

package auth

import (
	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
)

// ScopeKind describes how a query must be restricted for a user
type ScopeKind int

const (
	// ScopeNone matches nothing. Users without a recognized role see an
	// empty portfolio, never an error.
	ScopeNone ScopeKind = iota
	// ScopeOwnBrands restricts to brands owned by the user
	ScopeOwnBrands
	// ScopeManagedUnits restricts to brands whose org business unit the
	// user manages
	ScopeManagedUnits
	// ScopeAll applies no restriction
	ScopeAll
)

// Scope is the visibility scope derived from a user's role
type Scope struct {
	Kind   ScopeKind
	UserID uuid.UUID
}

// ResolveScope derives the visibility scope for a user. The switch is closed
// over the role enum; anything unrecognized falls through to ScopeNone.
func ResolveScope(user *UserContext) Scope {
	if user == nil {
		return Scope{Kind: ScopeNone}
	}
	switch user.Role {
	case domain.RoleAccountManager:
		return Scope{Kind: ScopeOwnBrands, UserID: user.UserID}
	case domain.RoleBusinessUnitHead:
		return Scope{Kind: ScopeManagedUnits, UserID: user.UserID}
	case domain.RoleSalesDirector:
		return Scope{Kind: ScopeAll}
	case domain.RoleNone:
		return Scope{Kind: ScopeNone}
	}
	return Scope{Kind: ScopeNone}
}

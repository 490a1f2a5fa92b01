package domain

// Role is the portfolio role a user holds. Roles form a strict hierarchy:
// account manager < business unit head < sales director. A user without a
// recognized role sees nothing.
type Role string

const (
	RoleNone             Role = ""
	RoleAccountManager   Role = "account_manager"
	RoleBusinessUnitHead Role = "business_unit_head"
	RoleSalesDirector    Role = "sales_director"
)

// IsValid checks if the Role is a valid enum value (RoleNone is not one)
func (r Role) IsValid() bool {
	switch r {
	case RoleAccountManager, RoleBusinessUnitHead, RoleSalesDirector:
		return true
	}
	return false
}

// CanManageBusinessUnit reports whether the role may be set as the manager of
// an org business unit.
func (r Role) CanManageBusinessUnit() bool {
	return r == RoleBusinessUnitHead || r == RoleSalesDirector
}

// Permission is a named capability checked at write time
type Permission string

const (
	PermCreateOpportunity     Permission = "create_opportunity"
	PermViewOwnOpportunity    Permission = "view_own_opportunity"
	PermChangeOwnOpportunity  Permission = "change_own_opportunity"
	PermViewUnitOpportunity   Permission = "view_unit_opportunity"
	PermChangeUnitOpportunity Permission = "change_unit_opportunity"
	PermApproveOpportunity    Permission = "approve_opportunity"
	PermViewAllOpportunities  Permission = "view_all_opportunities"
	PermChangeAllOpportunity  Permission = "change_all_opportunity"
	PermManageCatalog         Permission = "manage_catalog"
	PermManageFiscalYears     Permission = "manage_fiscal_years"
)

// roleGrants is the precomputed grant table. Each role's set is a superset of
// the roles below it in the hierarchy.
var roleGrants = map[Role]map[Permission]bool{
	RoleAccountManager: {
		PermCreateOpportunity:    true,
		PermViewOwnOpportunity:   true,
		PermChangeOwnOpportunity: true,
	},
	RoleBusinessUnitHead: {
		PermCreateOpportunity:     true,
		PermViewOwnOpportunity:    true,
		PermChangeOwnOpportunity:  true,
		PermViewUnitOpportunity:   true,
		PermChangeUnitOpportunity: true,
		PermApproveOpportunity:    true,
	},
	RoleSalesDirector: {
		PermCreateOpportunity:     true,
		PermViewOwnOpportunity:    true,
		PermChangeOwnOpportunity:  true,
		PermViewUnitOpportunity:   true,
		PermChangeUnitOpportunity: true,
		PermApproveOpportunity:    true,
		PermViewAllOpportunities:  true,
		PermChangeAllOpportunity:  true,
		PermManageCatalog:         true,
		PermManageFiscalYears:     true,
	},
}

// Grants reports whether the role holds the permission. Unknown roles hold
// nothing.
func (r Role) Grants(p Permission) bool {
	return roleGrants[r][p]
}

package domain_test

import (
	"testing"

	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, domain.RoleAccountManager.IsValid())
	assert.True(t, domain.RoleBusinessUnitHead.IsValid())
	assert.True(t, domain.RoleSalesDirector.IsValid())
	assert.False(t, domain.RoleNone.IsValid())
	assert.False(t, domain.Role("admin").IsValid())
}

func TestRole_Grants(t *testing.T) {
	tests := []struct {
		role       domain.Role
		permission domain.Permission
		want       bool
	}{
		{domain.RoleAccountManager, domain.PermCreateOpportunity, true},
		{domain.RoleAccountManager, domain.PermViewOwnOpportunity, true},
		{domain.RoleAccountManager, domain.PermApproveOpportunity, false},
		{domain.RoleAccountManager, domain.PermManageCatalog, false},
		{domain.RoleBusinessUnitHead, domain.PermApproveOpportunity, true},
		{domain.RoleBusinessUnitHead, domain.PermViewUnitOpportunity, true},
		{domain.RoleBusinessUnitHead, domain.PermViewAllOpportunities, false},
		{domain.RoleBusinessUnitHead, domain.PermManageFiscalYears, false},
		{domain.RoleSalesDirector, domain.PermViewAllOpportunities, true},
		{domain.RoleSalesDirector, domain.PermManageCatalog, true},
		{domain.RoleSalesDirector, domain.PermManageFiscalYears, true},
		{domain.RoleNone, domain.PermCreateOpportunity, false},
		{domain.RoleNone, domain.PermViewOwnOpportunity, false},
		{domain.Role("unknown"), domain.PermCreateOpportunity, false},
	}

	for _, tt := range tests {
		got := tt.role.Grants(tt.permission)
		assert.Equal(t, tt.want, got, "role %q permission %q", tt.role, tt.permission)
	}
}

// Each role must hold everything the role below it holds
func TestRole_GrantsAreSupersets(t *testing.T) {
	all := []domain.Permission{
		domain.PermCreateOpportunity,
		domain.PermViewOwnOpportunity,
		domain.PermChangeOwnOpportunity,
		domain.PermViewUnitOpportunity,
		domain.PermChangeUnitOpportunity,
		domain.PermApproveOpportunity,
		domain.PermViewAllOpportunities,
		domain.PermChangeAllOpportunity,
		domain.PermManageCatalog,
		domain.PermManageFiscalYears,
	}

	for _, p := range all {
		if domain.RoleAccountManager.Grants(p) {
			assert.True(t, domain.RoleBusinessUnitHead.Grants(p),
				"business unit head missing account manager permission %q", p)
		}
		if domain.RoleBusinessUnitHead.Grants(p) {
			assert.True(t, domain.RoleSalesDirector.Grants(p),
				"sales director missing business unit head permission %q", p)
		}
	}
}

func TestRole_CanManageBusinessUnit(t *testing.T) {
	assert.False(t, domain.RoleAccountManager.CanManageBusinessUnit())
	assert.True(t, domain.RoleBusinessUnitHead.CanManageBusinessUnit())
	assert.True(t, domain.RoleSalesDirector.CanManageBusinessUnit())
	assert.False(t, domain.RoleNone.CanManageBusinessUnit())
}

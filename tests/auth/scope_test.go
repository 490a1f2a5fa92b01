package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/auth"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveScope_AccountManager(t *testing.T) {
	userID := uuid.New()
	scope := auth.ResolveScope(&auth.UserContext{
		UserID: userID,
		Role:   domain.RoleAccountManager,
	})
	assert.Equal(t, auth.ScopeOwnBrands, scope.Kind)
	assert.Equal(t, userID, scope.UserID)
}

func TestResolveScope_BusinessUnitHead(t *testing.T) {
	userID := uuid.New()
	scope := auth.ResolveScope(&auth.UserContext{
		UserID: userID,
		Role:   domain.RoleBusinessUnitHead,
	})
	assert.Equal(t, auth.ScopeManagedUnits, scope.Kind)
	assert.Equal(t, userID, scope.UserID)
}

func TestResolveScope_SalesDirector(t *testing.T) {
	scope := auth.ResolveScope(&auth.UserContext{
		UserID: uuid.New(),
		Role:   domain.RoleSalesDirector,
	})
	assert.Equal(t, auth.ScopeAll, scope.Kind)
}

// Anything unrecognized must fail closed, not open
func TestResolveScope_FailsClosed(t *testing.T) {
	assert.Equal(t, auth.ScopeNone, auth.ResolveScope(nil).Kind)
	assert.Equal(t, auth.ScopeNone, auth.ResolveScope(&auth.UserContext{
		UserID: uuid.New(),
		Role:   domain.RoleNone,
	}).Kind)
	assert.Equal(t, auth.ScopeNone, auth.ResolveScope(&auth.UserContext{
		UserID: uuid.New(),
		Role:   domain.Role("superuser"),
	}).Kind)
}

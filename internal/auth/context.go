package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	Role        domain.Role
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// Grants reports whether the user's role holds the permission
func (u *UserContext) Grants(p domain.Permission) bool {
	return u.Role.Grants(p)
}

// HasAnyRole checks if the user holds any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.Role) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

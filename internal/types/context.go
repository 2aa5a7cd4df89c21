package types

import (
	"context"
	"fmt"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxRoles     ContextKey = "ctx_roles"

	// DefaultUserID is used by batch jobs and tests that run without a caller
	DefaultUserID = "00000000-0000-0000-0000-000000000000"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetRoleSet returns the caller's resolved role set from the context.
// Authorization is expressed as set membership on this value, never as
// method calls on a user object.
func GetRoleSet(ctx context.Context) RoleSet {
	if roles, ok := ctx.Value(CtxRoles).(RoleSet); ok {
		return roles
	}
	return RoleSet{}
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetRoleSet sets the caller's role set in the context
func SetRoleSet(ctx context.Context, roles RoleSet) context.Context {
	return context.WithValue(ctx, CtxRoles, roles)
}

// ValidateActorContext validates that the caller identity is present
func ValidateActorContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	if GetUserID(ctx) == "" {
		return fmt.Errorf("no actor found in context")
	}

	return nil
}

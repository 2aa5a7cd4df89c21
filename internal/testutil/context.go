package testutil

import (
	"context"

	"github.com/openhoa/openhoa/internal/types"
)

// SetupContext returns a request context authenticated as the default
// test user with the given roles.
func SetupContext(roles ...types.Role) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	if len(roles) == 0 {
		roles = []types.Role{types.RoleSysadmin}
	}
	ctx = types.SetRoleSet(ctx, types.NewRoleSet(roles...))
	return ctx
}

// ContextAs returns a request context authenticated as a specific user
func ContextAs(userID string, roles ...types.Role) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, userID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	ctx = types.SetRoleSet(ctx, types.NewRoleSet(roles...))
	return ctx
}

// Package ctxutil carries per-request identity through context.Context:
// the authenticated caller and the correlation ID.
package ctxutil

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

type ctxKey string

const (
	callerKey    ctxKey = "caller"
	requestIDKey ctxKey = "request_id"
)

// Caller is the authenticated principal behind a request.
type Caller struct {
	UserID uuid.UUID
	Role   string
}

// WithCaller stores the caller in the context.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// CallerFromCtx returns the caller, or false when the request is anonymous.
func CallerFromCtx(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	if !ok || c.UserID == uuid.Nil {
		return Caller{}, false
	}
	return c, true
}

// WithUserID sets the caller's user ID, keeping any role already stored.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	c, _ := ctx.Value(callerKey).(Caller)
	c.UserID = id
	return WithCaller(ctx, c)
}

// UserIDFromCtx returns the caller's user ID. uuid.Nil and false mean the
// request is anonymous.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	c, ok := CallerFromCtx(ctx)
	return c.UserID, ok
}

// WithRole sets the caller's role claim, keeping any user ID already stored.
func WithRole(ctx context.Context, role string) context.Context {
	c, _ := ctx.Value(callerKey).(Caller)
	c.Role = role
	return WithCaller(ctx, c)
}

// RoleFromCtx returns the caller's role claim, or "".
func RoleFromCtx(ctx context.Context) string {
	c, _ := ctx.Value(callerKey).(Caller)
	return c.Role
}

// HasRole reports whether an authenticated caller holds one of roles.
func HasRole(ctx context.Context, roles ...string) bool {
	c, ok := CallerFromCtx(ctx)
	return ok && slices.Contains(roles, c.Role)
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the request ID, or "".
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

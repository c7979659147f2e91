// Package ctxutil provides typed accessors for request-scoped values.
package ctxutil

import (
	"context"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

type ctxKey string

const (
	auditCtxKey  ctxKey = "audit_context"
	requestIDKey ctxKey = "request_id"
)

// WithAuditContext stores the actor metadata in the context.
func WithAuditContext(ctx context.Context, actx domain.AuditContext) context.Context {
	return context.WithValue(ctx, auditCtxKey, actx)
}

// AuditContextFromCtx extracts the actor metadata from the context.
// Returns a zero value and false if absent or the user ID is empty.
func AuditContextFromCtx(ctx context.Context) (domain.AuditContext, bool) {
	actx, ok := ctx.Value(auditCtxKey).(domain.AuditContext)
	if !ok || actx.UserID == "" {
		return domain.AuditContext{}, false
	}
	return actx, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

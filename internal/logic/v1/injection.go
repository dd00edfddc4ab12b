package v1

import (
	"context"
)

const VISITOR_CONTEXT_KEY = "__folio.visitor"

// InjectVisitor get visitor id from context
func InjectVisitor(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(VISITOR_CONTEXT_KEY).(string)
	return val, ok && val != ""
}

// WithVisitor 脱离 gin.Context 后继续携带访客身份，用于长连接
func WithVisitor(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, VISITOR_CONTEXT_KEY, visitorID)
}

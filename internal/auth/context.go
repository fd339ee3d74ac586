package auth

import (
	"context"

	"github.com/dscnitrourkela/project-nutella/pkg/identity"
)

// RequestContext carries the per-request authentication state: the presented
// bearer token, the resolved claims (nil for anonymous requests) and the
// session handle.
type RequestContext struct {
	Token   string
	Claims  *identity.Claims
	Session *Session
}

type requestContextKey struct{}

// WithRequestContext attaches rc to ctx for resolvers to consult.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext returns the request's authentication state, or nil when the
// request never passed through the session middleware.
func FromContext(ctx context.Context) *RequestContext {
	if ctx == nil {
		return nil
	}

	rc, _ := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc
}

package httpx

import (
	"context"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/service"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the visitor's Session Context.
// If sc is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, sc *service.SessionContext) context.Context {
	if sc == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, sc)
}

// SessionFromContext returns the visitor's Session Context and whether one is present.
func SessionFromContext(ctx context.Context) (*service.SessionContext, bool) {
	sc, ok := ctx.Value(sessionKey{}).(*service.SessionContext)
	return sc, ok && sc != nil
}

// CurrentIdentity returns the signed-in identity for the request, if any.
func CurrentIdentity(ctx context.Context) (domainauth.Identity, bool) {
	sc, ok := SessionFromContext(ctx)
	if !ok {
		return domainauth.Identity{}, false
	}
	return sc.Identity()
}

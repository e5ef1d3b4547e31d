// Package authctx carries verified token claims through a request's context.
//
// The claims value is attached by the authentication middleware after a
// successful verification and lives only for that request. Handlers and the
// role-authorization middleware read it back; nothing else writes it.
package authctx

import (
	"context"
	"errors"

	"github.com/skillsenselab/rolegate/internal/token"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

// claimsKey is the single key used to store claims in context.
var claimsKey = contextKey{}

// ErrNoClaims is returned when claims are not found in the context.
var ErrNoClaims = errors.New("authctx: no claims in context")

// Set stores verified claims in the context.
func Set(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Get retrieves claims from the context. The second return is false when the
// authentication middleware has not run on this request.
func Get(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}

// GetOrError retrieves claims from the context, or ErrNoClaims.
func GetOrError(ctx context.Context) (*token.Claims, error) {
	claims, ok := Get(ctx)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}

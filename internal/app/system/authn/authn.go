// internal/app/system/authn/authn.go

// Package authn resolves the calling principal on each request.
//
// Credential issuance is not Huddle's job: an upstream identity provider
// authenticates the caller and the gateway injects the verified identity as
// headers. This package only reads those headers, validates their shape,
// and makes the principal available to handlers via the request context.
package authn

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Header names the gateway sets after verifying the caller's credentials.
const (
	HeaderUserID = "X-Auth-User-Id"
	HeaderRole   = "X-Auth-User-Role"
)

// Principal identifies an authenticated caller.
type Principal struct {
	ID   primitive.ObjectID
	Role string // "admin" | "user"
}

// IsSiteAdmin reports whether the principal carries the site-wide admin
// role. Group admin standing is separate and lives in group_memberships.
func (p Principal) IsSiteAdmin() bool { return p.Role == "admin" }

type ctxKey struct{}

// FromRequest returns the principal attached to the request, if any.
// ok=false means the request is unauthenticated or carried a malformed
// user ID; callers must treat both the same and fail closed.
func FromRequest(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(ctxKey{}).(Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p. Exposed for tests.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// RequirePrincipal rejects requests without a valid identity header pair
// with 401 and otherwise stores the principal in the request context.
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idHex := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if idHex == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		uid, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			// Malformed ID from the gateway; fail closed.
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		role := strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderRole)))
		if role == "" {
			role = "user"
		}
		p := Principal{ID: uid, Role: role}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

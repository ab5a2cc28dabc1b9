package identity

import (
	"context"
	"net/http"

	"orderflow/internal/entities"
)

// Header names filled in by the authenticating edge. Token verification and
// issuance live in the authentication collaborator; this service trusts the
// resolved pair it receives.
const (
	HeaderIdentity = "X-Identity-ID"
	HeaderRole     = "X-Identity-Role"
)

type contextKey struct{}

// FromRequest resolves the acting identity of an HTTP request. The WebSocket
// route also accepts query parameters because browser WebSocket clients
// cannot set headers.
func FromRequest(r *http.Request) (entities.Actor, bool) {
	id := r.Header.Get(HeaderIdentity)
	role := r.Header.Get(HeaderRole)

	if id == "" {
		id = r.URL.Query().Get("identity")
	}
	if role == "" {
		role = r.URL.Query().Get("role")
	}

	if id == "" || !entities.IsValidRole(role) {
		return entities.Actor{}, false
	}
	return entities.Actor{ID: id, Role: entities.RoleType(role)}, true
}

// Middleware rejects unauthenticated requests and stores the actor in the
// request context for handlers.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := FromRequest(r)
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), actor)))
		})
	}
}

func NewContext(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

func FromContext(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(entities.Actor)
	return actor, ok
}

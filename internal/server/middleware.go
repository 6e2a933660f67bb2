package server

import (
	"context"
	"net/http"
	"strings"
)

// Role names surfaced by the upstream identity proxy
const (
	RoleAdmin     = "admin"
	RoleVolunteer = "volunteer"
)

// Identity is the caller as asserted by the upstream proxy. The engine never
// re-derives identity; it trusts the headers.
type Identity struct {
	UserID string
	Role   string
}

type contextKey string

const identityKey contextKey = "identity"

// LoadIdentity surfaces the X-User-ID and X-User-Role headers into the
// request context. Requests without the headers pass through anonymous.
func LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if userID != "" {
			identity := Identity{
				UserID: userID,
				Role:   strings.ToLower(strings.TrimSpace(r.Header.Get("X-User-Role"))),
			}
			r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentIdentity returns the caller identity set by LoadIdentity
func CurrentIdentity(r *http.Request) (Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(Identity)
	return identity, ok
}

// RequireSignedIn rejects anonymous requests with 401
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentIdentity(r); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects callers whose role is not in the allowed set with 403.
// Anonymous callers get 401.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := CurrentIdentity(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, has := set[identity.Role]; !has {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

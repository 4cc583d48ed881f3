package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mohamim360/kanban-api/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity authenticates every request through the resolver and attaches
// the resulting identity to the request context. Resource handlers read
// it back with GetIdentity; nothing downstream ever re-parses the header.
func Identity(resolver auth.IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolver.Resolve(r.Header.Get("Authorization"))
			if err != nil {
				writeUnauthorized(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the authenticated identity from the context.
// Returns nil outside the Identity middleware.
func GetIdentity(ctx context.Context) *auth.Identity {
	if identity, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	code := "unauthenticated"
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		code = "missing_credential"
	case errors.Is(err, auth.ErrMalformedCredential):
		code = "malformed_credential"
	case errors.Is(err, auth.ErrMissingSubject):
		code = "missing_subject"
	case errors.Is(err, auth.ErrMissingEmail):
		code = "missing_email"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Unauthorized",
		"code":  code,
	})
}

package http

import (
	"context"
	"net/http"
	"strings"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "account_claims"

// AuthMiddleware validates the bearer token and attaches the verified
// claims. Handlers consume only the account id and role; credential issuance
// lives with the identity provider.
func AuthMiddleware(verifier security.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, domain.ErrUnauthenticated)
				return
			}
			claims, err := verifier.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, domain.ErrUnauthenticated)
				return
			}
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin callers before the handler runs.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || !claims.IsAdmin() {
			writeError(w, domain.ErrUnauthorized)
			return
		}
		next(w, r)
	}
}

func ClaimsFromContext(ctx context.Context) *security.AccountClaims {
	claims, _ := ctx.Value(claimsContextKey).(*security.AccountClaims)
	return claims
}

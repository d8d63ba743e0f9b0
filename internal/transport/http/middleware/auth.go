package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/iamasit07/hex/backend/pkg/auth"
	"github.com/iamasit07/hex/backend/pkg/httputil"
)

type contextKey struct{}

// SessionAuth requires a session token issued for the game named by the
// {id} route parameter.
func SessionAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := httputil.GetTokenFromRequest(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ValidateSessionToken(secret, tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if id := chi.URLParam(r, "id"); id != "" && id != claims.GameID {
				http.Error(w, "Token does not belong to this game", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the claims stored by SessionAuth.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*auth.Claims)
	return claims, ok
}

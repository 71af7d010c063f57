package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/DrikC/bulls-and-cows/internal/auth"
)

type ctxKey string

const playerIDKey ctxKey = "playerID"

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores its player ID in
// the request context.
func AuthMiddleware(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				writeError(w, r, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), playerIDKey, claims.PlayerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	return strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func PlayerIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(playerIDKey)
	s, ok := v.(string)
	return s, ok
}

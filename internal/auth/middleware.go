package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/parthasastry/notes-app/internal/errs"
	"github.com/parthasastry/notes-app/internal/identity"
)

type ctxKey string

const authorizerKey ctxKey = "authorizer"

// AuthorizerFromContext returns the authorizer context stored by RequireAuth,
// shaped like an API Gateway Cognito authorizer: {"claims": {...}}.
func AuthorizerFromContext(ctx context.Context) (identity.Authorizer, bool) {
	v, ok := ctx.Value(authorizerKey).(identity.Authorizer)
	return v, ok
}

// RequireAuth verifies the bearer token. Preflight requests pass through
// unauthenticated.
func RequireAuth(jwtSvc *JWT) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				unauthorized(w)
				return
			}
			token := strings.TrimPrefix(h, "Bearer ")

			claims, err := jwtSvc.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}

			authz := identity.Authorizer{"claims": map[string]any(claims)}
			ctx := context.WithValue(r.Context(), authorizerKey, authz)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(errs.NewUnauthorizedError("Unauthorized"))
}

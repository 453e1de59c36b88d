package middleware

import (
	"net/http"
	"strings"

	"cercle-be/internal/user"
	"cercle-be/internal/utils"
)

// RequireAuth parses the bearer token and puts the caller's identity
// into the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.WriteJSONError(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := user.ParseJWT(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.WriteJSONError(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route to callers holding one of the given roles.
// Must be mounted after RequireAuth.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := utils.GetUserRoleFromContext(r.Context())
			role, ok := user.ParseRole(raw)
			if !ok {
				utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
		})
	}
}

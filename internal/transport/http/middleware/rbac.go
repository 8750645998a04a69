package middleware

import (
	"log/slog"
	"net/http"

	"hrerp/internal/transport/http/api"
)

// Authorizer decides whether a role holds a permission.
type Authorizer interface {
	Allowed(role, permission string) (bool, error)
}

func RequirePermission(permission string, authz Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}

			allowed, err := authz.Allowed(user.RoleName, permission)
			if err != nil {
				slog.Error("permission check failed", "err", err, "role", user.RoleName, "permission", permission)
				api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", GetRequestID(r.Context()))
				return
			}
			if !allowed {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

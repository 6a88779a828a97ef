// Package rbac provides role-based route guards layered on top of the auth
// middleware's context values.
package rbac

import (
	"net/http"

	"waroengpos/pkg/middleware"
	"waroengpos/pkg/response"
)

const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// Require allows the request through only when the authenticated user holds
// one of the given roles.
func Require(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Unauthorized(w)
				return
			}
			if _, ok := allowed[role]; !ok {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/pkg/response"
)

// requireCapability gates a route on a single Authorizer decision. Role is
// read from context, set by AuthMiddleware from the JWT claims.
func requireCapability(check func(roleID int) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}
			if !check(roleID) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePrivileged restricts a route to clinic administrators.
func RequirePrivileged(authorizer entity.Authorizer) func(http.Handler) http.Handler {
	return requireCapability(authorizer.IsPrivileged)
}

// RequireProposer restricts a route to roles that may file appointment
// suggestions.
func RequireProposer(authorizer entity.Authorizer) func(http.Handler) http.Handler {
	return requireCapability(authorizer.CanProposeAppointments)
}

// RequireStaff restricts a route to administrators and doctors.
func RequireStaff(authorizer entity.Authorizer) func(http.Handler) http.Handler {
	return requireCapability(func(roleID int) bool {
		return authorizer.IsPrivileged(roleID) || authorizer.CanProposeAppointments(roleID)
	})
}

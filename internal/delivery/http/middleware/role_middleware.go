package middleware

import (
	"net/http"

	"university-clinic-api/internal/domain/entity"
	"university-clinic-api/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDDoctor)(next)
}

// RequireClinicalStaff is a convenience middleware for clinical-staff endpoints.
// Admins can do everything clinical staff can.
func RequireClinicalStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDClinicalStaff, entity.RoleIDAdmin)(next)
}

// RequirePatient allows the two patient roles: students and academic staff
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDStudent, entity.RoleIDAcademicStaff)(next)
}

// RequireMedicalStaff allows doctors, clinical staff, and admins
func RequireMedicalStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDDoctor, entity.RoleIDClinicalStaff, entity.RoleIDAdmin)(next)
}

package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/domain"
	apperrors "github.com/spec-kit/job-portal/pkg/util/errorutil"
)

// RequireRole ensures the authenticated user has one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("access denied for role " + string(principal.User.Role))
		}
		return c.Next()
	}
}

// RequireJobSeeker is shorthand for RequireRole(domain.RoleJobSeeker).
func RequireJobSeeker() fiber.Handler {
	return RequireRole(domain.RoleJobSeeker)
}

// RequireEmployer is shorthand for RequireRole(domain.RoleEmployer).
func RequireEmployer() fiber.Handler {
	return RequireRole(domain.RoleEmployer)
}

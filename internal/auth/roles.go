package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doutly/doutly-service/internal/domain"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

// RequireRole ensures the principal's derived role is one of the
// allowed set. An empty set only requires authentication.
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
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireSalesRole ensures the caller sits in the lead hierarchy.
func RequireSalesRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !domain.IsSalesRole(principal.Role) {
			return apperrors.NewForbidden("sales role required")
		}
		return c.Next()
	}
}

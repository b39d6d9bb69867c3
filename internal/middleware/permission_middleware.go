package middleware

import (
	"context"

	"github.com/yahya12213/SiteManagement-sub007/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// Authorizer is the permission collaborator: a deny short-circuits the request
// before any handler state is touched.
type Authorizer interface {
	Authorize(ctx context.Context, claims *utils.UserClaims, operation string) error
}

// RequirePermission checks the acting user may call the named operation.
func RequirePermission(authorizer Authorizer, operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFromCtx(c)
		if claims == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: no user claims",
			})
		}

		if err := authorizer.Authorize(c.UserContext(), claims, operation); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: insufficient permissions for this action",
			})
		}

		return c.Next()
	}
}

package permission

import (
	"slices"

	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermissionApi struct {
	controller *PermissionController
	config     *config.Config
}

func NewPermissionApi(controller *PermissionController, config *config.Config) *PermissionApi {
	return &PermissionApi{
		controller: controller,
		config:     config,
	}
}

func (h *PermissionApi) Setup(app *fiber.App) {
	perms := app.Group("/api/permissions", middleware.AuthMiddleware(h.config.SkipAuth), requireAdmin())

	perms.Get("/", h.controller.ListPermissions)
	perms.Put("/:role", h.controller.SetRoleOperations)
}

// Permission admin is role-gated directly: the permission store cannot
// bootstrap its own access.
func requireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil || !slices.Contains(claims.Roles, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
		return c.Next()
	}
}

package permission

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"

	"github.com/gofiber/fiber/v2"
)

type PermissionController struct {
	Service PermissionService
}

func NewPermissionController(service PermissionService) *PermissionController {
	return &PermissionController{Service: service}
}

// ListPermissions godoc
// @Summary List role permissions
// @Tags permissions
// @Produce json
// @Success 200 {array} RolePermission
// @Router /api/permissions [get]
func (c *PermissionController) ListPermissions(ctx *fiber.Ctx) error {
	perms, err := c.Service.ListPermissions(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if perms == nil {
		perms = []RolePermission{}
	}
	return ctx.JSON(perms)
}

// SetRoleOperations godoc
// @Summary Set the operations a role may call
// @Tags permissions
// @Accept json
// @Produce json
// @Param role path string true "Role"
// @Param body body object true "Operations"
// @Success 200 {object} map[string]string
// @Router /api/permissions/{role} [put]
func (c *PermissionController) SetRoleOperations(ctx *fiber.Ctx) error {
	var input struct {
		Operations []string `json:"operations"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.SetRoleOperations(ctx.UserContext(), ctx.Params("role"), input.Operations); err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Permissions updated"})
}

package hierarchy

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"

	"github.com/gofiber/fiber/v2"
)

type HierarchyController struct {
	Service HierarchyService
}

func NewHierarchyController(service HierarchyService) *HierarchyController {
	return &HierarchyController{Service: service}
}

// SetChain godoc
// @Summary Replace an employee's approval chain
// @Description Wholesale replacement: the old set is deleted and the new set inserted in one transaction
// @Tags chains
// @Accept json
// @Produce json
// @Param employeeId path string true "Employee ID"
// @Param chain body ChainInput true "Manager assignments"
// @Success 200 {array} ManagerAssignment
// @Failure 400 {object} map[string]string "Invalid chain"
// @Router /api/chains/{employeeId} [put]
func (c *HierarchyController) SetChain(ctx *fiber.Ctx) error {
	employeeID := ctx.Params("employeeId")

	var input ChainInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	chain, err := c.Service.SetChain(ctx.UserContext(), employeeID, input)
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(chain)
}

// GetChain godoc
// @Summary Get an employee's approval chain
// @Tags chains
// @Produce json
// @Param employeeId path string true "Employee ID"
// @Success 200 {array} ManagerAssignment
// @Router /api/chains/{employeeId} [get]
func (c *HierarchyController) GetChain(ctx *fiber.Ctx) error {
	chain, err := c.Service.GetChain(ctx.UserContext(), ctx.Params("employeeId"))
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if chain == nil {
		chain = []ManagerAssignment{}
	}
	return ctx.JSON(chain)
}

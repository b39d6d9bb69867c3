package delegation

import (
	"slices"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DelegationController struct {
	Service DelegationService
}

func NewDelegationController(service DelegationService) *DelegationController {
	return &DelegationController{Service: service}
}

// Grant godoc
// @Summary Grant approval authority to a delegate
// @Tags delegations
// @Accept json
// @Produce json
// @Param delegation body GrantInput true "Grant"
// @Success 201 {object} Delegation
// @Failure 400 {object} map[string]string "Invalid grant"
// @Router /api/delegations [post]
func (c *DelegationController) Grant(ctx *fiber.Ctx) error {
	var input GrantInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	claims := middleware.ClaimsFromCtx(ctx)
	// Non-admins may only delegate their own authority.
	if claims != nil && !slices.Contains(claims.Roles, "admin") {
		input.DelegatorID = claims.UserID
	}

	d, err := c.Service.Grant(ctx.UserContext(), input)
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(d)
}

// Revoke godoc
// @Summary Revoke a delegation
// @Description Closes the validity window at the current instant; the row is kept
// @Tags delegations
// @Param id path string true "Delegation ID"
// @Success 200 {object} map[string]string
// @Router /api/delegations/{id} [delete]
func (c *DelegationController) Revoke(ctx *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(ctx)
	actorID := ""
	isAdmin := false
	if claims != nil {
		actorID = claims.UserID
		isAdmin = slices.Contains(claims.Roles, "admin")
	}

	if err := c.Service.Revoke(ctx.UserContext(), ctx.Params("id"), actorID, isAdmin); err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Delegation revoked"})
}

// List godoc
// @Summary List delegations by delegator
// @Tags delegations
// @Produce json
// @Param delegator query string true "Delegator ID"
// @Success 200 {array} Delegation
// @Router /api/delegations [get]
func (c *DelegationController) List(ctx *fiber.Ctx) error {
	delegator := ctx.Query("delegator")
	if delegator == "" {
		if claims := middleware.ClaimsFromCtx(ctx); claims != nil {
			delegator = claims.UserID
		}
	}

	delegations, err := c.Service.ListByDelegator(ctx.UserContext(), delegator)
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if delegations == nil {
		delegations = []Delegation{}
	}
	return ctx.JSON(delegations)
}

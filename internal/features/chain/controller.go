package chain

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/pkg/clock"

	"github.com/gofiber/fiber/v2"
)

type ChainController struct {
	Resolver Resolver
	Clock    clock.Clock
}

func NewChainController(resolver Resolver, clk clock.Clock) *ChainController {
	return &ChainController{Resolver: resolver, Clock: clk}
}

// ResolveChain godoc
// @Summary Preview the delegation-resolved approval chain
// @Description Who may approve at each rank, as of now. An empty array means no approval is required.
// @Tags chains
// @Produce json
// @Param employeeId path string true "Employee ID"
// @Success 200 {array} RankApprovers
// @Router /api/chains/{employeeId}/resolved [get]
func (c *ChainController) ResolveChain(ctx *fiber.Ctx) error {
	resolved, err := c.Resolver.Resolve(ctx.UserContext(), ctx.Params("employeeId"), c.Clock.Now())
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if resolved == nil {
		resolved = []RankApprovers{}
	}
	return ctx.JSON(resolved)
}

package chain

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ChainApi struct {
	controller *ChainController
	authorizer middleware.Authorizer
	config     *config.Config
}

func NewChainApi(controller *ChainController, authorizer middleware.Authorizer, config *config.Config) *ChainApi {
	return &ChainApi{
		controller: controller,
		authorizer: authorizer,
		config:     config,
	}
}

func (h *ChainApi) Setup(app *fiber.App) {
	chains := app.Group("/api/chains", middleware.AuthMiddleware(h.config.SkipAuth))

	chains.Get("/:employeeId/resolved", middleware.RequirePermission(h.authorizer, "chains.read"), h.controller.ResolveChain)
}

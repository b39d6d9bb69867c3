package delegation

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DelegationApi struct {
	controller *DelegationController
	authorizer middleware.Authorizer
	config     *config.Config
}

func NewDelegationApi(controller *DelegationController, authorizer middleware.Authorizer, config *config.Config) *DelegationApi {
	return &DelegationApi{
		controller: controller,
		authorizer: authorizer,
		config:     config,
	}
}

func (h *DelegationApi) Setup(app *fiber.App) {
	delegations := app.Group("/api/delegations", middleware.AuthMiddleware(h.config.SkipAuth))

	delegations.Post("/", middleware.RequirePermission(h.authorizer, "delegations.manage"), h.controller.Grant)
	delegations.Delete("/:id", middleware.RequirePermission(h.authorizer, "delegations.manage"), h.controller.Revoke)
	delegations.Get("/", middleware.RequirePermission(h.authorizer, "delegations.read"), h.controller.List)
}

package hierarchy

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type HierarchyApi struct {
	controller *HierarchyController
	authorizer middleware.Authorizer
	config     *config.Config
}

func NewHierarchyApi(controller *HierarchyController, authorizer middleware.Authorizer, config *config.Config) *HierarchyApi {
	return &HierarchyApi{
		controller: controller,
		authorizer: authorizer,
		config:     config,
	}
}

func (h *HierarchyApi) Setup(app *fiber.App) {
	chains := app.Group("/api/chains", middleware.AuthMiddleware(h.config.SkipAuth))

	chains.Put("/:employeeId", middleware.RequirePermission(h.authorizer, "chains.manage"), h.controller.SetChain)
	chains.Get("/:employeeId", middleware.RequirePermission(h.authorizer, "chains.read"), h.controller.GetChain)
}

package sync

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *SyncController
	authorizer middleware.Authorizer
	config     *config.Config
}

func NewSyncApi(controller *SyncController, authorizer middleware.Authorizer, config *config.Config) *SyncApi {
	return &SyncApi{
		controller: controller,
		authorizer: authorizer,
		config:     config,
	}
}

func (h *SyncApi) Setup(app *fiber.App) {
	syncGroup := app.Group("/api/sync", middleware.AuthMiddleware(h.config.SkipAuth))

	syncGroup.Post("/run", middleware.RequirePermission(h.authorizer, "chains.manage"), h.controller.TriggerSync)
	syncGroup.Get("/logs", middleware.RequirePermission(h.authorizer, "chains.read"), h.controller.ListLogs)
}

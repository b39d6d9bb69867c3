package audit

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	authorizer middleware.Authorizer
	config     *config.Config
}

func NewAuditApi(controller *AuditController, authorizer middleware.Authorizer, config *config.Config) *AuditApi {
	return &AuditApi{
		controller: controller,
		authorizer: authorizer,
		config:     config,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	events := app.Group("/api/audit", middleware.AuthMiddleware(h.config.SkipAuth))

	events.Get("/events", middleware.RequirePermission(h.authorizer, "audit.read"), h.controller.ListEvents)
	events.Get("/events/export", middleware.RequirePermission(h.authorizer, "audit.read"), h.controller.ExportEvents)
}

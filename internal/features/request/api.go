package request

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RequestApi struct {
	controller *RequestController
	authorizer middleware.Authorizer
	config     *config.Config
}

func NewRequestApi(controller *RequestController, authorizer middleware.Authorizer, config *config.Config) *RequestApi {
	return &RequestApi{
		controller: controller,
		authorizer: authorizer,
		config:     config,
	}
}

func (h *RequestApi) Setup(app *fiber.App) {
	requests := app.Group("/api/requests", middleware.AuthMiddleware(h.config.SkipAuth))

	requests.Post("/", middleware.RequirePermission(h.authorizer, "requests.submit"), h.controller.Submit)
	requests.Get("/", h.controller.List)
	requests.Get("/:id", h.controller.Get)
	requests.Get("/:id/history", h.controller.History)

	requests.Post("/:id/approve", middleware.RequirePermission(h.authorizer, "requests.decide"), h.controller.Approve)
	requests.Post("/:id/reject", middleware.RequirePermission(h.authorizer, "requests.decide"), h.controller.Reject)
	requests.Post("/:id/cancel", middleware.RequirePermission(h.authorizer, "requests.cancel"), h.controller.Cancel)
}

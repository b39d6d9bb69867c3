package employee

import (
	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type EmployeeApi struct {
	controller *EmployeeController
	authorizer middleware.Authorizer
	config     *config.Config
}

func NewEmployeeApi(controller *EmployeeController, authorizer middleware.Authorizer, config *config.Config) *EmployeeApi {
	return &EmployeeApi{
		controller: controller,
		authorizer: authorizer,
		config:     config,
	}
}

func (h *EmployeeApi) Setup(app *fiber.App) {
	employees := app.Group("/api/employees", middleware.AuthMiddleware(h.config.SkipAuth))

	employees.Get("/", middleware.RequirePermission(h.authorizer, "chains.read"), h.controller.ListEmployees)
	employees.Get("/:id", middleware.RequirePermission(h.authorizer, "chains.read"), h.controller.GetEmployee)
}

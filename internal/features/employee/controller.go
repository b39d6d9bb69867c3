package employee

import (
	"github.com/gofiber/fiber/v2"
)

type EmployeeController struct {
	Repo EmployeeRepository
}

func NewEmployeeController(repo EmployeeRepository) *EmployeeController {
	return &EmployeeController{Repo: repo}
}

// ListEmployees godoc
// @Summary List directory employees
// @Tags employees
// @Produce json
// @Success 200 {array} Employee
// @Router /api/employees [get]
func (c *EmployeeController) ListEmployees(ctx *fiber.Ctx) error {
	activeOnly := ctx.QueryBool("active", false)
	employees, err := c.Repo.List(ctx.UserContext(), activeOnly)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(employees)
}

// GetEmployee godoc
// @Summary Get an employee by directory id
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} Employee
// @Failure 404 {object} map[string]string
// @Router /api/employees/{id} [get]
func (c *EmployeeController) GetEmployee(ctx *fiber.Ctx) error {
	emp, err := c.Repo.GetByEmployeeID(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if emp == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	return ctx.JSON(emp)
}

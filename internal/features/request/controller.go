package request

import (
	"strconv"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/audit"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RequestController struct {
	Service      RequestService
	AuditService audit.AuditService
}

func NewRequestController(service RequestService, auditService audit.AuditService) *RequestController {
	return &RequestController{
		Service:      service,
		AuditService: auditService,
	}
}

func actorID(ctx *fiber.Ctx) string {
	if claims := middleware.ClaimsFromCtx(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}

// Submit godoc
// @Summary Submit an HR request
// @Description Creates a leave/overtime/correction request; an employee without a chain is approved immediately
// @Tags requests
// @Accept json
// @Produce json
// @Param request body SubmitInput true "Request"
// @Success 201 {object} Request
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /api/requests [post]
func (c *RequestController) Submit(ctx *fiber.Ctx) error {
	var input SubmitInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req, err := c.Service.Submit(ctx.UserContext(), input, actorID(ctx))
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(req)
}

// Approve godoc
// @Summary Approve the request's current rank
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body DecisionInput false "Optional comment"
// @Success 200 {object} Request
// @Failure 403 {object} map[string]string "Not eligible"
// @Failure 409 {object} map[string]string "Already acted upon"
// @Router /api/requests/{id}/approve [post]
func (c *RequestController) Approve(ctx *fiber.Ctx) error {
	var input DecisionInput
	_ = ctx.BodyParser(&input)

	req, err := c.Service.Approve(ctx.UserContext(), ctx.Params("id"), actorID(ctx), input.Comment)
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(req)
}

// Reject godoc
// @Summary Reject the request (terminal, reason required)
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body DecisionInput true "Reason"
// @Success 200 {object} Request
// @Failure 422 {object} map[string]string "Reason required"
// @Router /api/requests/{id}/reject [post]
func (c *RequestController) Reject(ctx *fiber.Ctx) error {
	var input DecisionInput
	_ = ctx.BodyParser(&input)

	req, err := c.Service.Reject(ctx.UserContext(), ctx.Params("id"), actorID(ctx), input.Reason)
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(req)
}

// Cancel godoc
// @Summary Cancel an approved request (administrator only)
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body DecisionInput true "Reason"
// @Success 200 {object} Request
// @Failure 409 {object} map[string]string "Not cancellable"
// @Router /api/requests/{id}/cancel [post]
func (c *RequestController) Cancel(ctx *fiber.Ctx) error {
	var input DecisionInput
	_ = ctx.BodyParser(&input)

	req, err := c.Service.Cancel(ctx.UserContext(), ctx.Params("id"), actorID(ctx), input.Reason)
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(req)
}

// Get godoc
// @Summary Get a request
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} Request
// @Router /api/requests/{id} [get]
func (c *RequestController) Get(ctx *fiber.Ctx) error {
	req, err := c.Service.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(req)
}

// List godoc
// @Summary List requests
// @Tags requests
// @Produce json
// @Param employee query string false "Employee ID"
// @Param status query string false "Status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} Request
// @Router /api/requests [get]
func (c *RequestController) List(ctx *fiber.Ctx) error {
	filters := map[string]interface{}{}
	if emp := ctx.Query("employee"); emp != "" {
		filters["employee_id"] = emp
	}
	if status := ctx.Query("status"); status != "" {
		filters["status"] = status
	}

	page, _ := strconv.ParseInt(ctx.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(ctx.Query("limit", "25"), 10, 64)

	requests, err := c.Service.List(ctx.UserContext(), filters, page, limit)
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if requests == nil {
		requests = []Request{}
	}
	return ctx.JSON(requests)
}

// History godoc
// @Summary The request's append-only transition ledger
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {array} audit.ApprovalEvent
// @Router /api/requests/{id}/history [get]
func (c *RequestController) History(ctx *fiber.Ctx) error {
	events, err := c.AuditService.History(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if events == nil {
		events = []audit.ApprovalEvent{}
	}
	return ctx.JSON(events)
}

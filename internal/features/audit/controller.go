package audit

import (
	"strconv"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

func (c *AuditController) buildFilters(ctx *fiber.Ctx) map[string]interface{} {
	filters := map[string]interface{}{}
	if actor := ctx.Query("actor"); actor != "" {
		filters["actor_id"] = actor
	}
	if decision := ctx.Query("decision"); decision != "" {
		filters["decision"] = decision
	}
	if request := ctx.Query("request"); request != "" {
		if oid, err := primitive.ObjectIDFromHex(request); err == nil {
			filters["request_id"] = oid
		}
	}
	return filters
}

// ListEvents godoc
// @Summary List approval events
// @Tags audit
// @Produce json
// @Param actor query string false "Actor ID"
// @Param decision query string false "Decision"
// @Param request query string false "Request ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} ApprovalEvent
// @Router /api/audit/events [get]
func (c *AuditController) ListEvents(ctx *fiber.Ctx) error {
	page, _ := strconv.ParseInt(ctx.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(ctx.Query("limit", "25"), 10, 64)

	events, err := c.Service.ListEvents(ctx.UserContext(), c.buildFilters(ctx), page, limit)
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if events == nil {
		events = []ApprovalEvent{}
	}
	return ctx.JSON(events)
}

// ExportEvents godoc
// @Summary Export approval events as an Excel workbook
// @Tags audit
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /api/audit/events/export [get]
func (c *AuditController) ExportEvents(ctx *fiber.Ctx) error {
	data, err := c.Service.ExportEvents(ctx.UserContext(), c.buildFilters(ctx))
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="approval_events.xlsx"`)
	return ctx.Send(data)
}

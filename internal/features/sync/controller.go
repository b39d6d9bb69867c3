package sync

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service DirectorySyncService
}

func NewSyncController(service DirectorySyncService) *SyncController {
	return &SyncController{Service: service}
}

// TriggerSync godoc
// @Summary Run a directory sync now
// @Tags sync
// @Produce json
// @Success 200 {object} SyncLog
// @Router /api/sync/run [post]
func (c *SyncController) TriggerSync(ctx *fiber.Ctx) error {
	log, err := c.Service.RunSync(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "log": log})
	}
	return ctx.JSON(log)
}

// ListLogs godoc
// @Summary List recent directory sync runs
// @Tags sync
// @Produce json
// @Param limit query int false "Limit"
// @Success 200 {array} SyncLog
// @Router /api/sync/logs [get]
func (c *SyncController) ListLogs(ctx *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(ctx.Query("limit", "20"), 10, 64)
	logs, err := c.Service.ListLogs(ctx.UserContext(), limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if logs == nil {
		logs = []SyncLog{}
	}
	return ctx.JSON(logs)
}

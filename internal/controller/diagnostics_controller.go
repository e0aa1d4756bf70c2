package controller

import (
	"strconv"

	"documind-be/internal/pkg/logger"
	"documind-be/internal/pkg/serverutils"
	"documind-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDiagnosticsController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

// diagnosticsController exposes the activity log feed. It reads from the
// isolated activity logger, not the main application log.
type diagnosticsController struct {
	activity logger.ILogger
}

func NewDiagnosticsController(activity logger.ILogger) IDiagnosticsController {
	return &diagnosticsController{
		activity: activity,
	}
}

func (c *diagnosticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/diagnostics")
	h.Get("logs", c.GetLogs)
	h.Get("logs/:id", c.GetLogDetail)
}

func (c *diagnosticsController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	level := ctx.Query("level", "")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	logs, err := c.activity.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}

func (c *diagnosticsController) GetLogDetail(ctx *fiber.Ctx) error {
	// Log ids are content hashes, not UUIDs.
	id := ctx.Params("id")

	entry, err := c.activity.GetLogById(id)
	if err != nil {
		return &service.NotFoundError{Resource: "log", ID: id}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show log", entry))
}

package controller

import (
	"documind-be/internal/dto"
	"documind-be/internal/pkg/serverutils"
	"documind-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
}

type workspaceController struct {
	workspaceService service.IWorkspaceService
}

func NewWorkspaceController(workspaceService service.IWorkspaceService) IWorkspaceController {
	return &workspaceController{
		workspaceService: workspaceService,
	}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace")
	h.Get("export", c.Export)
	h.Post("import", c.Import)
}

func (c *workspaceController) Export(ctx *fiber.Ctx) error {
	res, err := c.workspaceService.Export(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export workspace", res))
}

func (c *workspaceController) Import(ctx *fiber.Ctx) error {
	var req dto.WorkspaceImportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workspaceService.Import(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import workspace", res))
}

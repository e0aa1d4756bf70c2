package controller

import (
	"strconv"

	"documind-be/internal/dto"
	"documind-be/internal/entity"
	"documind-be/internal/pkg/serverutils"
	"documind-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	DownloadHistory(ctx *fiber.Ctx) error
	Suggestions(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	chatbotService service.IChatbotService
}

func NewSessionController(sessionService service.ISessionService, chatbotService service.IChatbotService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		chatbotService: chatbotService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id/title", c.Rename)
	h.Delete(":id", c.Delete)
	h.Get(":id/history/download", c.DownloadHistory)
	h.Get(":id/suggestions", c.Suggestions)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	metas, err := c.sessionService.ListAll(ctx.Context(), ctx.Query("q", ""))
	if err != nil {
		return err
	}

	res := make([]dto.GetAllSessionsResponse, 0, len(metas))
	for _, m := range metas {
		res = append(res, dto.GetAllSessionsResponse{
			Id:        m.Id,
			Title:     m.Title,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &serverutils.ValidationError{Message: "invalid session id"}
	}

	record, err := c.sessionService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	// Bring the engine back into memory as a side effect. A session whose
	// index cannot be loaded anymore still shows its transcript.
	loadable := c.chatbotService.Warm(ctx.Context(), id) == nil

	return ctx.JSON(serverutils.SuccessResponse("Success show session", toShowSessionResponse(record, loadable)))
}

func (c *sessionController) Rename(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &serverutils.ValidationError{Message: "invalid session id"}
	}

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ok, err := c.sessionService.Rename(ctx.Context(), id, req.Title)
	if err != nil {
		return err
	}
	if !ok {
		return &service.NotFoundError{Resource: "session", ID: id.String()}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rename session", dto.RenameSessionResponse{
		Id:    id,
		Title: req.Title,
	}))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &serverutils.ValidationError{Message: "invalid session id"}
	}

	if err := c.chatbotService.DeleteSession(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *sessionController) DownloadHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &serverutils.ValidationError{Message: "invalid session id"}
	}

	filename, data, err := c.chatbotService.ExportHistoryCSV(ctx.Context(), id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(data)
}

func (c *sessionController) Suggestions(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &serverutils.ValidationError{Message: "invalid session id"}
	}

	count, _ := strconv.Atoi(ctx.Query("count", "0"))

	res, err := c.chatbotService.Suggestions(ctx.Context(), id, count)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get suggestions", res))
}

func toShowSessionResponse(record *entity.ChatSession, loadable bool) dto.ShowSessionResponse {
	turns := make([]dto.ChatTurnDTO, 0, len(record.Turns))
	for _, t := range record.Turns {
		turns = append(turns, dto.ChatTurnDTO{
			Role:      t.Role,
			Content:   t.Content,
			Timestamp: t.Timestamp,
		})
	}

	return dto.ShowSessionResponse{
		Id:            record.Id,
		Title:         record.Title,
		Turns:         turns,
		UploadedFiles: record.UploadedFiles,
		LlmProvider:   record.LlmProvider,
		PromptVariant: record.PromptVariant,
		Loadable:      loadable,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

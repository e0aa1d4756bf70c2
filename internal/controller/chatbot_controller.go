package controller

import (
	"io"

	"documind-be/internal/dto"
	"documind-be/internal/pkg/serverutils"
	"documind-be/internal/service"
	"documind-be/pkg/pdf"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	ProcessDocuments(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Post("/documents/process", c.ProcessDocuments)
	r.Post("/chat", c.Chat)
}

func (c *chatbotController) ProcessDocuments(ctx *fiber.Ctx) error {
	var req dto.ProcessDocumentsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return &serverutils.ValidationError{Message: "request must be multipart/form-data"}
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return &serverutils.ValidationError{Message: "at least one file is required"}
	}

	files := make([]pdf.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return err
		}
		files = append(files, pdf.File{Name: fh.Filename, Data: data})
	}

	res, err := c.chatbotService.ProcessDocuments(ctx.Context(), &req, files)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success process documents", res))
}

func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

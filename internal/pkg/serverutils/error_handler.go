package serverutils

import (
	"context"
	"errors"

	"documind-be/internal/repository/memory"
	"documind-be/internal/service"
	"documind-be/pkg/answer"
	"documind-be/pkg/llm/factory"
	"documind-be/pkg/pdf"
	"documind-be/pkg/vectorindex"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbled out of handlers into the
// JSON error envelope. Typed domain failures keep their message; anything
// unrecognized becomes an opaque 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		status, message := classifyError(err)
		return c.Status(status).JSON(ErrorResponse(status, message))
	}
}

func classifyError(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest, validationErr.Error()
	}

	if errors.Is(err, factory.ErrUnsupportedProvider) || errors.Is(err, answer.ErrUnknownVariant) {
		return fiber.StatusBadRequest, err.Error()
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		return fiber.StatusNotFound, notFoundErr.Error()
	}

	var sessionLoadErr *memory.SessionLoadError
	if errors.As(err, &sessionLoadErr) {
		return fiber.StatusConflict, sessionLoadErr.Error()
	}

	var generationErr *answer.GenerationError
	if errors.As(err, &generationErr) {
		return fiber.StatusBadGateway, generationErr.Error()
	}

	var loadErr *vectorindex.LoadError
	if errors.As(err, &loadErr) {
		return fiber.StatusConflict, loadErr.Error()
	}

	var buildErr *vectorindex.BuildError
	if errors.As(err, &buildErr) {
		return fiber.StatusBadGateway, buildErr.Error()
	}

	var extractionErr *pdf.ExtractionError
	if errors.As(err, &extractionErr) {
		return fiber.StatusUnprocessableEntity, extractionErr.Error()
	}

	var storeErr *service.StoreError
	if errors.As(err, &storeErr) {
		return fiber.StatusInternalServerError, "storage failure"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusGatewayTimeout, "request timed out"
	}

	return fiber.StatusInternalServerError, "Internal server error"
}

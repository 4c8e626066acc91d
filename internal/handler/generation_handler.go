package handler

import (
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"

	"github.com/gofiber/fiber/v2"
)

type GenerationHandler struct {
	generationService service.GenerationService
}

func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// GenerateQuestions returns AI-generated question drafts for the topic. The
// drafts are review material for the author; nothing is persisted here.
func (h *GenerationHandler) GenerateQuestions(c *fiber.Ctx) error {
	if _, ok := middleware.UserIDFromContext(c); !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.generationService.GenerateQuestions(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

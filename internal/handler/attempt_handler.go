package handler

import (
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AttemptHandler struct {
	attemptService service.AttemptService
	validator      *validation.Validator
}

func NewAttemptHandler(attemptService service.AttemptService, validator *validation.Validator) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
		validator:      validator,
	}
}

// SubmitAttempt scores a submission for a quiz and records the attempt. This
// is the only place answers are judged; the client never holds the key.
func (h *AttemptHandler) SubmitAttempt(c *fiber.Ctx) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	quizID := c.Params("id")
	if errs := h.validator.ValidateQuizID(quizID); len(errs) > 0 {
		return errs
	}

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	var answers map[string][]string
	if req.Answers != nil {
		answers = make(map[string][]string, len(req.Answers))
		for questionID, selection := range req.Answers {
			answers[questionID] = selection
		}
	}
	if errs := h.validator.ValidateSubmission(answers); len(errs) > 0 {
		return errs
	}

	resp, err := h.attemptService.SubmitAttempt(c.Context(), userID, quizID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetAttempt returns a recorded attempt to the user who made it.
func (h *AttemptHandler) GetAttempt(c *fiber.Ctx) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	attemptID := c.Params("id")
	if errs := h.validator.ValidateAttemptID(attemptID); len(errs) > 0 {
		return errs
	}

	resp, err := h.attemptService.GetAttempt(c.Context(), userID, attemptID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

package handler

import (
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type QuizHandler struct {
	quizService service.QuizService
	validator   *validation.Validator
}

func NewQuizHandler(quizService service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		validator:   validator,
	}
}

// CreateQuiz creates a quiz owned by the authenticated user.
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.quizService.CreateQuiz(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateQuiz replaces the definition of a quiz the caller owns.
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	quizID := c.Params("id")
	if errs := h.validator.ValidateQuizID(quizID); len(errs) > 0 {
		return errs
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.quizService.UpdateQuiz(c.Context(), userID, quizID, req); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "quiz updated"})
}

// DeleteQuiz soft-deletes a quiz the caller owns.
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	quizID := c.Params("id")
	if errs := h.validator.ValidateQuizID(quizID); len(errs) > 0 {
		return errs
	}

	if err := h.quizService.DeleteQuiz(c.Context(), userID, quizID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "quiz deleted"})
}

// GetQuiz returns a quiz for taking. Correctness flags are stripped; the
// owner gets the full definition from GetQuizForEditing instead.
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if errs := h.validator.ValidateQuizID(quizID); len(errs) > 0 {
		return errs
	}

	resp, err := h.quizService.GetQuizForTaking(c.Context(), quizID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetQuizForEditing returns the full quiz definition to its owner.
func (h *QuizHandler) GetQuizForEditing(c *fiber.Ctx) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	quizID := c.Params("id")
	if errs := h.validator.ValidateQuizID(quizID); len(errs) > 0 {
		return errs
	}

	resp, err := h.quizService.GetQuizForEditing(c.Context(), userID, quizID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListQuizzes returns a page of quiz summaries.
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	var pagination dto.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid pagination parameters")
	}
	pagination.Limit, pagination.Offset = h.validator.NormalizePagination(pagination.Limit, pagination.Offset)

	resp, err := h.quizService.ListQuizzes(c.Context(), pagination)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

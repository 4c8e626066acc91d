package handler

import (
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
	validator   *validation.Validator
}

func NewUserHandler(userService service.UserService, validator *validation.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// GetMyProfile returns the authenticated user's profile.
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	resp, err := h.userService.GetUserProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetMyAttempts lists the authenticated user's attempt history.
func (h *UserHandler) GetMyAttempts(c *fiber.Ctx) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var filters dto.AttemptFilters
	if err := c.QueryParser(&filters); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filter parameters")
	}
	var pagination dto.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid pagination parameters")
	}
	pagination.Limit, pagination.Offset = h.validator.NormalizePagination(pagination.Limit, pagination.Offset)

	resp, err := h.userService.GetUserAttempts(c.Context(), userID, filters, pagination)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetMyStats aggregates the authenticated user's attempt history.
func (h *UserHandler) GetMyStats(c *fiber.Ctx) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	resp, err := h.userService.GetUserStats(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

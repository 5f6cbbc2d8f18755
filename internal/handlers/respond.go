package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/splitkaro/backend/internal/auth"
	"github.com/splitkaro/backend/internal/service"
	"github.com/splitkaro/backend/internal/storage"
)

func success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func failure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// fail maps domain errors to HTTP statuses. Unrecognized errors become an
// opaque 500 so internals never leak to clients.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return failure(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrNotAdmin),
		errors.Is(err, service.ErrNotCreator):
		return failure(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, auth.ErrPhoneExists):
		return failure(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, auth.ErrWeakPassword):
		return failure(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return failure(c, fiber.StatusUnauthorized, err.Error())
	default:
		return failure(c, fiber.StatusInternalServerError, "internal server error")
	}
}

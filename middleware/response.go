package middleware

import (
	"errors"

	"elearn/logger"
	"elearn/services"
	"elearn/store"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}

// ValidationErrorResponse writes a 400 with the offending fields.
func ValidationErrorResponse(c *fiber.Ctx, message string, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  message,
		"fields": errors,
	})
}

// ServiceErrorResponse maps domain errors to their HTTP status. Anything
// unrecognised is logged and answered with a 500 carrying fallback.
func ServiceErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrUserExists):
		return ErrorResponse(c, fiber.StatusBadRequest, "User already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrCourseNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, "Course not found")
	case errors.Is(err, services.ErrForumNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, "Forum not found")
	case errors.Is(err, services.ErrUnknownLesson):
		return ErrorResponse(c, fiber.StatusBadRequest, "Lesson not found in course")
	case errors.Is(err, services.ErrNotEnrolled):
		return ErrorResponse(c, fiber.StatusForbidden, "Not enrolled in course")
	case errors.Is(err, services.ErrCourseIncomplete):
		return ErrorResponse(c, fiber.StatusBadRequest, "Complete every lesson before requesting a certificate")
	case errors.Is(err, store.ErrNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, "Not found")
	}

	logger.Log.Error(fallback, "method", c.Method(), "path", c.Path(), "request_id", c.GetRespHeader(fiber.HeaderXRequestID), "error", err)
	return ErrorResponse(c, fiber.StatusInternalServerError, fallback)
}

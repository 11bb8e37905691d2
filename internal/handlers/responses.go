package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"culvana/internal/services"
)

// respondError writes the canonical error envelope. Every failure response
// in the API uses this one shape.
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{"message": message},
	})
}

// respondValidationError turns validator failures into a 400 with a
// per-field breakdown.
func respondValidationError(c *fiber.Ctx, err error) error {
	fields := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{
			"message": "Validation failed",
			"fields":  fields,
		},
	})
}

// respondServiceError maps a service error onto its HTTP status. Known
// sentinels keep their message; anything else is a 500 carrying the
// failure's description.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrTooManyAttempts):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return respondError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrRegistrationNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrDocumentNotFound),
		errors.Is(err, services.ErrItemNotFound):
		return respondError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmailRegistered):
		return respondError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrDeliveryFailed):
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	default:
		return respondError(c, fiber.StatusInternalServerError, err.Error())
	}
}

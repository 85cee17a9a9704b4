package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"labpipe/internal/http/middleware"
	"labpipe/internal/pipeline"
	"labpipe/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "missing or invalid credentials")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

// serviceError translates service-level sentinel errors into standardized
// HTTP error responses. Anything unrecognized is a 500 with no internal
// detail; ExecError is the one deliberate exception, relaying the tool's
// captured stderr so a failed stage is diagnosable from the dashboard.
func serviceError(c *fiber.Ctx, err error) error {
	var execErr *pipeline.ExecError
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrFileIDRequired),
		errors.Is(err, service.ErrStepNameRequired),
		errors.Is(err, pipeline.ErrNestedValue):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, service.ErrDuplicateEmail):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "email already registered")
	case errors.Is(err, service.ErrInvalidFileType):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "Invalid file type")
	case errors.Is(err, service.ErrCommandRequired):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "command is required")
	case errors.Is(err, service.ErrCommandNotAllowed):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "command is not allowed")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrFileNotFound),
		errors.Is(err, service.ErrJobNotFound),
		errors.Is(err, service.ErrStepNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.As(err, &execErr):
		return writeError(c, fiber.StatusInternalServerError, "EXECUTION_FAILED", execErr.Stderr)
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

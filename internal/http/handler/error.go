package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"farmapi/internal/http/middleware"
	"farmapi/internal/service"
)

// errorPayload is the JSON body of every error response.
type errorPayload struct {
	Error string `json:"error"`
}

const (
	msgInvalidBody      = "Invalid request body."
	msgNotFound         = "resource not found"
	msgMethodNotAllowed = "method not allowed"
	msgInternal         = "internal server error"
	msgUnavailable      = "dependency unavailable"
)

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a JSON error response. message must be safe to show to clients.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// respond maps a service error to a response: validation errors become 400 with their
// message, anything else is handed to the global ErrorHandler.
func respond(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return writeError(c, fiber.StatusBadRequest, verr.Message)
	}
	return err
}

// ErrorHandler returns a Fiber global error handler. Unexpected errors are logged with the
// request id and answered without internal details.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, msgInvalidBody)
		case fiber.StatusNotFound:
			return writeError(c, status, msgNotFound)
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, msgMethodNotAllowed)
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, fe.Message)
		}

		logger.Error("request_failed",
			zap.String("request_id", requestIDFromCtx(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
		return writeError(c, status, msgInternal)
	}
}

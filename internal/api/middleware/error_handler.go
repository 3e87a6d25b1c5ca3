package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
)

// ErrorHandler renders every error as {"error":{"code","message","request_id"}}.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return writeError(c, fiberErr.Code, "HTTP_ERROR", fiberErr.Message)
		}

		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			attrs := []any{
				slog.String("code", appErr.Code),
				slog.String("request_id", RequestID(c)),
				slog.Any("error", appErr.Err),
			}
			switch {
			case appErr.StatusCode >= 500:
				logger.Error("internal error", attrs...)
			case appErr.Err != nil:
				logger.Debug("request rejected", attrs...)
			}
			return writeError(c, appErr.StatusCode, appErr.Code, appErr.Message)
		}

		logger.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Path()),
			slog.String("request_id", RequestID(c)),
		)
		return writeError(c, fiber.StatusInternalServerError, domain.ErrInternal.Code, domain.ErrInternal.Message)
	}
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	body := fiber.Map{
		"code":    code,
		"message": message,
	}
	if id := RequestID(c); id != "" {
		body["request_id"] = id
	}
	return c.Status(status).JSON(fiber.Map{"error": body})
}

// RequestID returns the id assigned by the requestid middleware.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/socialops/content-api/pkg/svcerr"
)

// respondError maps a service error to the stable {error, code} body. The
// full error stays in the server log; callers only see the taxonomy message.
func respondError(c *fiber.Ctx, err error) error {
	status := svcerr.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "error", err.Error())
	}
	return c.Status(status).JSON(fiber.Map{
		"error": svcerr.Message(err),
		"code":  svcerr.Code(err),
	})
}

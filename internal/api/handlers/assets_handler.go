package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialops/content-api/internal/api/middleware"
	"github.com/socialops/content-api/internal/service"
)

type AssetsHandler struct {
	s service.AssetsService
}

func NewAssetsHandler(s service.AssetsService) *AssetsHandler {
	return &AssetsHandler{s: s}
}

func (h *AssetsHandler) Upload(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no file provided",
		})
	}

	asset, err := h.s.Upload(c.Context(), caller.UserID, c.Params("companyId"), file)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(asset)
}

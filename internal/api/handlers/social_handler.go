package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialops/content-api/internal/api/middleware"
	"github.com/socialops/content-api/internal/service"
	"github.com/socialops/content-api/internal/transfer"
)

type SocialHandler struct {
	s service.PublishService
}

func NewSocialHandler(s service.PublishService) *SocialHandler {
	return &SocialHandler{s: s}
}

func (h *SocialHandler) Publish(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}
	// The path is authoritative for the company scope.
	req.CompanyID = c.Params("companyId")

	result, err := h.s.Publish(c.Context(), caller.UserID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

func (h *SocialHandler) Insights(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	insights, err := h.s.FetchInsights(c.Context(), caller.UserID, c.Params("contentCalendarId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(insights)
}

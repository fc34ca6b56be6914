package handlers

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/service"
	"github.com/socialops/content-api/internal/transfer"
	"github.com/socialops/content-api/pkg/svcerr"
)

const WebhookSecretHeader = "x-webhook-secret"

type WebhookHandler struct {
	s   service.PipelineService
	cfg config.Config
}

func NewWebhookHandler(cfg config.Config, s service.PipelineService) *WebhookHandler {
	return &WebhookHandler{s: s, cfg: cfg}
}

// requireSecret authenticates an automation trigger. A missing service-side
// secret fails closed: an unconfigured webhook never accepts anything.
func requireSecret(c *fiber.Ctx, configured string) error {
	if configured == "" {
		return svcerr.Unavailable("webhook is not configured")
	}

	provided := c.Get(WebhookSecretHeader)
	if provided == "" {
		auth := c.Get(fiber.HeaderAuthorization)
		if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
			provided = auth[7:]
		}
	}

	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
		return svcerr.Unauthorized("invalid webhook secret")
	}

	return nil
}

func (h *WebhookHandler) ReviewContent(c *fiber.Ctx) error {
	if err := requireSecret(c, h.cfg.Webhooks.ContentReviewSecret); err != nil {
		return respondError(c, err)
	}

	var payload transfer.ReviewPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	result, item, err := h.s.ReviewContent(c.Context(), &payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result":          result,
		"contentCalendar": item,
	})
}

func (h *WebhookHandler) GenerateCaption(c *fiber.Ctx) error {
	if err := requireSecret(c, h.cfg.Webhooks.ContentGenerateSecret); err != nil {
		return respondError(c, err)
	}

	var payload transfer.GeneratePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	result, item, err := h.s.GenerateCaption(c.Context(), &payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result":          result,
		"contentCalendar": item,
	})
}

func (h *WebhookHandler) GenerateBrandRules(c *fiber.Ctx) error {
	if err := requireSecret(c, h.cfg.Webhooks.BrandRulesSecret); err != nil {
		return respondError(c, err)
	}

	var payload transfer.BrandRulesPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	kb, err := h.s.GenerateBrandRules(c.Context(), &payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"result": kb,
	})
}

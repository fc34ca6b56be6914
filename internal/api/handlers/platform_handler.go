package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/api/middleware"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/service"
	"github.com/socialops/content-api/internal/transfer"
)

type PlatformHandler struct {
	ps  service.PlatformService
	li  service.LinkedinService
	fb  service.FacebookService
	cfg config.Config
}

func NewPlatformHandler(ps service.PlatformService, li service.LinkedinService, fb service.FacebookService, cfg config.Config) *PlatformHandler {
	return &PlatformHandler{
		ps:  ps,
		li:  li,
		fb:  fb,
		cfg: cfg,
	}
}

// Connect returns the provider authorization URL for the requesting company.
// The caller identity and company id ride the provider state parameter; no
// row is written until the callback lands.
func (h *PlatformHandler) Connect(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	companyID := c.Query("companyId")
	if companyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "companyId is required",
		})
	}

	nonce, err := gonanoid.New()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	state := transfer.ConnectState{
		CompanyID: companyID,
		UserID:    caller.UserID,
		Nonce:     nonce,
	}
	encoded, err := state.Encode()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	authURL := h.ps.GetAuthURL(c.Context(), c.Params("provider"), encoded)
	if authURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported provider",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": authURL})
}

// Callback terminates the OAuth redirect round trip. The caller is a
// browser, so every outcome is a redirect to the front end; protocol errors
// degrade to an error flag and never surface as HTTP errors.
func (h *PlatformHandler) Callback(c *fiber.Ctx) error {
	provider := c.Params("provider")

	if providerError := c.Query("error"); providerError != "" {
		slog.Info("oauth callback denied", "provider", provider, "error", providerError)
		return h.redirectError(c, provider+"_denied")
	}

	state, err := transfer.DecodeConnectState(c.Query("state"))
	if err != nil {
		slog.Info("oauth callback with malformed state", "provider", provider, "error", err.Error())
		return h.redirectError(c, "invalid_state")
	}

	code := c.Query("code")

	switch provider {
	case models.ProviderLinkedin:
		err = h.li.LinkedinCallback(c.Context(), code, state)
	case models.ProviderFacebook:
		err = h.fb.FacebookCallback(c.Context(), code, state)
	default:
		return h.redirectError(c, "unsupported_provider")
	}

	if err != nil {
		slog.Info("oauth callback failed", "provider", provider, "error", err.Error())
		return h.redirectError(c, provider+"_connect_failed")
	}

	redirectURL := fmt.Sprintf("%s/settings/integrations?success=%s_connected", h.cfg.FrontendURL, provider)
	return c.Redirect(redirectURL, fiber.StatusFound)
}

func (h *PlatformHandler) redirectError(c *fiber.Ctx, code string) error {
	redirectURL := fmt.Sprintf("%s/settings/integrations?error=%s", h.cfg.FrontendURL, code)
	return c.Redirect(redirectURL, fiber.StatusFound)
}

func (h *PlatformHandler) ListAccounts(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	accounts, err := h.ps.ListAccounts(c.Context(), caller.UserID, c.Params("companyId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

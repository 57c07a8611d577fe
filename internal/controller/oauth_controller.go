package controller

import (
	"meeting-assistant-be/internal/pkg/serverutils"
	"meeting-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
}

func NewOAuthController(service service.IOAuthService) IOAuthController {
	return &oauthController{service: service}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("/google/callback", c.Callback)
}

// Callback lands the user after the Google consent screen. The state
// parameter carries the suspended conversation; the service resumes it and
// the bot answers in Slack, so the browser tab only needs a goodbye.
func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	state := ctx.Query("state")
	code := ctx.Query("code")
	if state == "" || code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "missing state or code"))
	}

	if err := c.service.HandleCallback(ctx.Context(), state, code); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	ctx.Type("html")
	return ctx.SendString("<html><body><p>You are logged in. You can close this window and return to Slack.</p></body></html>")
}

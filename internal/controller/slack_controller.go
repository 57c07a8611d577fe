package controller

import (
	"encoding/json"
	"time"

	"meeting-assistant-be/internal/dto"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/internal/pkg/serverutils"
	"meeting-assistant-be/internal/service"
	"meeting-assistant-be/pkg/slack"

	"github.com/gofiber/fiber/v2"
)

type ISlackController interface {
	RegisterRoutes(r fiber.Router)
	Events(ctx *fiber.Ctx) error
	Commands(ctx *fiber.Ctx) error
	Actions(ctx *fiber.Ctx) error
	InstallCallback(ctx *fiber.Ctx) error
}

// slackController receives the Slack webhooks. Handlers only verify,
// enqueue and return; Slack retries anything that takes longer than a few
// seconds, so the dialog turn itself runs on the consumer.
type slackController struct {
	publisher     service.IPublisherService
	assistant     service.IAssistantService
	signingSecret string
	log           logger.ILogger
}

func NewSlackController(
	publisher service.IPublisherService,
	assistant service.IAssistantService,
	signingSecret string,
	log logger.ILogger,
) ISlackController {
	return &slackController{
		publisher:     publisher,
		assistant:     assistant,
		signingSecret: signingSecret,
		log:           log,
	}
}

func (c *slackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/slack")
	h.Post("/events", c.Events)
	h.Post("/commands", c.Commands)
	h.Post("/actions", c.Actions)
	h.Get("/install/callback", c.InstallCallback)
}

func (c *slackController) verified(ctx *fiber.Ctx) bool {
	ok := slack.VerifySignature(
		c.signingSecret,
		ctx.Get("X-Slack-Request-Timestamp"),
		ctx.Get("X-Slack-Signature"),
		ctx.Body(),
		time.Now(),
	)
	if !ok {
		c.log.Warn("SlackController", "Signature verification failed", map[string]interface{}{
			"path": ctx.Path(),
		})
	}
	return ok
}

func (c *slackController) enqueue(ctx *fiber.Ctx, msg dto.InboundMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.publisher.Publish(ctx.Context(), payload)
}

func (c *slackController) Events(ctx *fiber.Ctx) error {
	if !c.verified(ctx) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid signature"))
	}

	var payload slack.EventsPayload
	if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	switch payload.Type {
	case slack.EventTypeURLVerification:
		return ctx.JSON(fiber.Map{"challenge": payload.Challenge})

	case slack.EventTypeEventCallback:
		event := payload.Event
		// The bot's own messages and edits come back through the same
		// webhook; consuming them would make the bot talk to itself.
		if event.BotId != "" || event.Subtype != "" {
			return ctx.SendStatus(fiber.StatusOK)
		}
		if event.Type != slack.InnerEventMessage && event.Type != slack.InnerEventAppMention {
			return ctx.SendStatus(fiber.StatusOK)
		}

		if err := c.enqueue(ctx, dto.InboundMessage{
			ConversationId: event.Channel,
			UserId:         event.User,
			TeamId:         payload.TeamId,
			Text:           event.Text,
		}); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	}

	return ctx.SendStatus(fiber.StatusOK)
}

func (c *slackController) Commands(ctx *fiber.Ctx) error {
	if !c.verified(ctx) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid signature"))
	}

	var cmd slack.CommandPayload
	if err := ctx.BodyParser(&cmd); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.enqueue(ctx, dto.InboundMessage{
		ConversationId: cmd.ChannelId,
		UserId:         cmd.UserId,
		TeamId:         cmd.TeamId,
		Text:           cmd.Text,
	}); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.SendStatus(fiber.StatusOK)
}

func (c *slackController) Actions(ctx *fiber.Ctx) error {
	if !c.verified(ctx) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid signature"))
	}

	var action slack.ActionsPayload
	if err := json.Unmarshal([]byte(ctx.FormValue("payload")), &action); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.enqueue(ctx, dto.InboundMessage{
		ConversationId: action.Channel.Id,
		UserId:         action.User.Id,
		TeamId:         action.Team.Id,
		Text:           action.ReplyText(),
	}); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.SendStatus(fiber.StatusOK)
}

func (c *slackController) InstallCallback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "missing code"))
	}

	if err := c.assistant.HandleInstall(ctx.Context(), code); err != nil {
		c.log.Error("SlackController", "Install failed", map[string]interface{}{"error": err.Error()})
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	ctx.Type("html")
	return ctx.SendString("<html><body><p>The meeting assistant was installed. Head back to Slack to say hello.</p></body></html>")
}

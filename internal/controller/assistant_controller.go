package controller

import (
	"meeting-assistant-be/internal/dto"
	"meeting-assistant-be/internal/pkg/serverutils"
	"meeting-assistant-be/internal/service"
	internalWS "meeting-assistant-be/internal/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

// assistantController exposes the non-Slack surface: a debug chat endpoint
// for exercising dialogs locally and the activity-feed websocket.
type assistantController struct {
	assistant service.IAssistantService
	hub       *internalWS.Hub
	validate  *validator.Validate
}

func NewAssistantController(assistant service.IAssistantService, hub *internalWS.Hub) IAssistantController {
	return &assistantController{
		assistant: assistant,
		hub:       hub,
		validate:  validator.New(),
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Get("/ws", c.ServeWs)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.assistant.DebugChat(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Replies", res))
}

func (c *assistantController) ServeWs(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	viewerId := ctx.Query("viewer", "anonymous")
	return websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeWs(c.hub, conn, viewerId)
	})(ctx)
}

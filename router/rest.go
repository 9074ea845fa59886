package router

import (
	"chat-service/controller"
	"chat-service/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func Rest(app *fiber.App, chat *controller.Chat) {
	api := app.Group("/v1", logger.New())

	// Chat projections and message create/delete. Everything requires an
	// authenticated caller.
	group := api.Group("/chat", middleware.JWT(), middleware.OTP())
	group.Get("/conversations", chat.Conversations)
	group.Get("/messages/:userId", chat.Messages)
	group.Post("/messages/:userId", chat.CreateMessage)
	group.Delete("/messages/:messageId", chat.DeleteMessage)
}

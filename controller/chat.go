package controller

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"chat-service/messenger"
)

type CreateMessageInput struct {
	Content string `json:"content" validate:"required"`
}

// Chat serves the REST projection of the messaging core. Creates and
// deletes go through the same delivery engine as the realtime path, so the
// fan-out to both parties' live sessions is identical.
type Chat struct {
	Delivery  *messenger.Delivery
	Projector *messenger.Projector
	Config    messenger.Config
	Validate  *validator.Validate
	Log       *zap.Logger
}

func NewChat(delivery *messenger.Delivery, projector *messenger.Projector, config messenger.Config, log *zap.Logger) *Chat {
	return &Chat{
		Delivery:  delivery,
		Projector: projector,
		Config:    config,
		Validate:  validator.New(),
		Log:       log,
	}
}

func (h *Chat) Conversations(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}
	page, limit := h.pageParams(c)

	conversations, total, err := h.Projector.Conversations(userID, page, limit)
	if err != nil {
		h.logError(c, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       conversations,
		"pagination": messenger.NewPagination(page, limit, total),
	})
}

func (h *Chat) Messages(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}
	otherUserID, err := paramID(c, "userId", messenger.ErrUserNotFound)
	if err != nil {
		return respondError(c, err)
	}
	page, limit := h.pageParams(c)

	messages, total, err := h.Projector.Messages(userID, otherUserID, page, limit)
	if err != nil {
		h.logError(c, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       messages,
		"pagination": messenger.NewPagination(page, limit, total),
	})
}

func (h *Chat) CreateMessage(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}
	receiverID, err := paramID(c, "userId", messenger.ErrUserNotFound)
	if err != nil {
		return respondError(c, err)
	}

	input := new(CreateMessageInput)
	if err := c.BodyParser(input); err != nil {
		return respondError(c, messenger.ErrInvalidContent)
	}
	if err := h.Validate.Struct(input); err != nil {
		return respondError(c, messenger.ErrInvalidContent)
	}

	message, err := h.Delivery.Send(userID, receiverID, input.Content)
	if err != nil {
		h.logError(c, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": messenger.NewMessagePayload(message),
	})
}

func (h *Chat) DeleteMessage(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}
	messageID, err := paramID(c, "messageId", messenger.ErrMessageNotFound)
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.Delivery.Delete(userID, messageID); err != nil {
		h.logError(c, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Message deleted successfully",
		"data":    nil,
	})
}

func (h *Chat) pageParams(c *fiber.Ctx) (int, int) {
	page := h.Config.ClampPage(c.QueryInt("page", 1))
	limit := h.Config.ClampLimit(c.QueryInt("limit", h.Config.DefaultPageLimit))
	return page, limit
}

func (h *Chat) logError(c *fiber.Ctx, err error) {
	if messenger.HTTPStatus(err) >= 500 {
		h.Log.Error("chat request failed", zap.String("path", c.Path()), zap.Error(err))
	}
}

// callerID reads the authenticated user id from the JWT claims set by the
// middleware.
func callerID(c *fiber.Ctx) (uint, error) {
	user, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return 0, messenger.ErrAuthFailed
	}
	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return 0, messenger.ErrAuthFailed
	}
	raw, ok := claims["id"].(string)
	if !ok {
		return 0, messenger.ErrAuthFailed
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, messenger.ErrAuthFailed
	}
	return uint(id), nil
}

// paramID parses a numeric route parameter; unparseable ids surface as the
// entity's not-found error.
func paramID(c *fiber.Ctx, name string, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, notFound
	}
	return uint(id), nil
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(messenger.HTTPStatus(err)).JSON(fiber.Map{
		"status":  "error",
		"message": messenger.ClientMessage(err),
		"data":    nil,
	})
}

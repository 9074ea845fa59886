package messenger

import (
	"time"

	"chat-service/model"
)

// Outbound server events.
const (
	EventMessage        = "message"
	EventMessageDeleted = "messageDeleted"
	EventTyping         = "typing"
	EventUserStatus     = "userStatus"
	EventError          = "error"
)

// Presence statuses carried by EventUserStatus.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// UserPayload is the denormalized display info attached to message events.
type UserPayload struct {
	Id        uint   `json:"id"`
	Username  string `json:"username"`
	AvatarUrl string `json:"avatarUrl"`
}

// MessagePayload is the full "message" event body, shared by the realtime
// and REST paths.
type MessagePayload struct {
	Id         uint        `json:"id"`
	SenderId   uint        `json:"senderId"`
	ReceiverId uint        `json:"receiverId"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"createdAt"`
	Sender     UserPayload `json:"sender"`
	Receiver   UserPayload `json:"receiver"`
}

type UserStatusPayload struct {
	UserId uint   `json:"userId"`
	Status string `json:"status"`
}

type TypingPayload struct {
	SenderId uint `json:"senderId"`
}

type MessageDeletedPayload struct {
	MessageId uint `json:"messageId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// AckPayload resolves a sendMessage/deleteMessage acknowledgment.
type AckPayload struct {
	Status    string `json:"status"`
	MessageId uint   `json:"messageId,omitempty"`
	Message   string `json:"message,omitempty"`
}

func AckSuccess(messageId uint) AckPayload {
	return AckPayload{Status: "success", MessageId: messageId}
}

func AckError(err error) AckPayload {
	return AckPayload{Status: "error", Message: ClientMessage(err)}
}

func NewUserPayload(user *model.User) UserPayload {
	return UserPayload{
		Id:        user.ID,
		Username:  user.Username,
		AvatarUrl: user.AvatarUrl,
	}
}

func NewMessagePayload(message *model.Message) MessagePayload {
	return MessagePayload{
		Id:         message.ID,
		SenderId:   message.SenderID,
		ReceiverId: message.ReceiverID,
		Content:    message.Content,
		CreatedAt:  message.CreatedAt,
		Sender:     NewUserPayload(&message.Sender),
		Receiver:   NewUserPayload(&message.Receiver),
	}
}

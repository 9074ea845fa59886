package router

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"

	"chat-service/messenger"
	"chat-service/socketio"

	"github.com/zishang520/socket.io/v2/socket"
)

// Inbound client events. Each one has a fixed schema; anything that does
// not decode into it is rejected at the boundary.
type SendMessageInput struct {
	ReceiverId uint   `json:"receiverId"`
	Content    string `json:"content"`
}

type DeleteMessageInput struct {
	MessageId uint `json:"messageId"`
}

type TypingInput struct {
	ReceiverId uint `json:"receiverId"`
}

// Socket wires the realtime event handlers. Connection lifecycle:
// the handshake middleware has already authenticated the client, so the
// connection handler joins the per-user room, admits the session into the
// registry and lets presence broadcast — in that order, before any client
// event is served. Business-logic failures answer with an error event and
// ack; they never tear the connection down.
func Socket(server *socketio.Server, registry *messenger.Registry, presence *messenger.Presence, delivery *messenger.Delivery, log *zap.Logger) {
	server.IO().On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		userID, ok := client.Data().(uint)
		if !ok {
			// middleware admits only authenticated sockets
			client.Disconnect(true)
			return
		}
		connectionID := string(client.Id())

		client.Join(socketio.Room(userID))
		registry.Register(userID, connectionID)
		presence.HandleConnect(userID)
		log.Info("user connected",
			zap.Uint("userId", userID), zap.String("socketId", connectionID))

		client.On("sendMessage", func(args ...interface{}) {
			ack := ackOf(args)
			input := new(SendMessageInput)
			if err := decodeEvent(args, input); err != nil {
				reject(client, ack, err)
				return
			}

			message, err := delivery.Send(userID, input.ReceiverId, input.Content)
			if err != nil {
				logFailure(log, "sendMessage", userID, err)
				reject(client, ack, err)
				return
			}
			respond(ack, messenger.AckSuccess(message.ID))
		})

		client.On("deleteMessage", func(args ...interface{}) {
			ack := ackOf(args)
			input := new(DeleteMessageInput)
			if err := decodeEvent(args, input); err != nil {
				reject(client, ack, err)
				return
			}

			if _, err := delivery.Delete(userID, input.MessageId); err != nil {
				logFailure(log, "deleteMessage", userID, err)
				reject(client, ack, err)
				return
			}
			respond(ack, messenger.AckSuccess(input.MessageId))
		})

		client.On("typing", func(args ...interface{}) {
			input := new(TypingInput)
			if err := decodeEvent(args, input); err != nil {
				// fire-and-forget, malformed indicators are dropped
				return
			}
			delivery.Typing(userID, input.ReceiverId)
		})

		client.On("disconnect", func(...interface{}) {
			wasLast := registry.Deregister(userID, connectionID)
			presence.HandleDisconnect(userID, wasLast)
			log.Info("user disconnected",
				zap.Uint("userId", userID),
				zap.String("socketId", connectionID),
				zap.Bool("lastSession", wasLast))
		})
	})
}

// decodeEvent maps the first event argument onto the expected schema,
// rejecting missing payloads and unknown or mistyped fields.
func decodeEvent(args []interface{}, v interface{}) error {
	if len(args) == 0 || args[0] == nil {
		return messenger.ErrInvalidPayload
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return messenger.ErrInvalidPayload
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return messenger.ErrInvalidPayload
	}
	return nil
}

// ackFn is the acknowledgment callback socket.io attaches as the last
// event argument when the client asked for one.
type ackFn = func([]any, error)

// ackOf extracts the acknowledgment callback when the client asked for one.
func ackOf(args []interface{}) ackFn {
	if len(args) == 0 {
		return nil
	}
	if ack, ok := args[len(args)-1].(ackFn); ok {
		return ack
	}
	return nil
}

func respond(ack ackFn, payload messenger.AckPayload) {
	if ack != nil {
		ack([]any{payload}, nil)
	}
}

// reject surfaces a failure to the originating connection only: a
// structured error event plus, when requested, the error ack.
func reject(client *socket.Socket, ack ackFn, err error) {
	client.Emit(messenger.EventError, messenger.ErrorPayload{Message: messenger.ClientMessage(err)})
	if ack != nil {
		ack([]any{messenger.AckError(err)}, nil)
	}
}

func logFailure(log *zap.Logger, event string, userID uint, err error) {
	if messenger.HTTPStatus(err) >= 500 {
		log.Error("handler failed", zap.String("event", event), zap.Uint("userId", userID), zap.Error(err))
		return
	}
	log.Debug("request rejected", zap.String("event", event), zap.Uint("userId", userID), zap.Error(err))
}

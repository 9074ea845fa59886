package messenger

import (
	"strings"

	"go.uber.org/zap"

	"chat-service/model"
)

// Delivery validates, persists and routes direct messages. Both the
// realtime and REST create/delete paths go through it, so fan-out to the
// parties' live sessions happens exactly the same way for either entry
// point.
type Delivery struct {
	store    Store
	registry *Registry
	emitter  Emitter
	events   Publisher
	config   Config
	log      *zap.Logger
}

func NewDelivery(store Store, registry *Registry, emitter Emitter, events Publisher, config Config, log *zap.Logger) *Delivery {
	return &Delivery{
		store:    store,
		registry: registry,
		emitter:  emitter,
		events:   events,
		config:   config,
		log:      log,
	}
}

// Send validates and persists a direct message, then routes the full
// payload to every live session of both sender and receiver. The sender's
// other tabs see the echo too. Checks run in a fixed order; the first
// failing one wins.
func (d *Delivery) Send(senderID, receiverID uint, content string) (*model.Message, error) {
	if senderID == receiverID {
		return nil, ErrCannotMessageSelf
	}

	if d.config.RequireFollow {
		follows, err := d.store.IsFollowing(senderID, receiverID)
		if err != nil {
			return nil, err
		}
		if !follows {
			return nil, ErrNotFollowing
		}
	}

	receiver, err := d.store.UserByID(receiverID)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" || len(trimmed) > d.config.MaxMessageLength {
		return nil, ErrInvalidContent
	}

	sender, err := d.store.UserByID(senderID)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Sender:     *sender,
		Receiver:   *receiver,
		Content:    trimmed,
	}
	if err := d.store.CreateMessage(message); err != nil {
		return nil, err
	}

	payload := NewMessagePayload(message)
	d.emitter.Emit(senderID, EventMessage, payload)
	d.emitter.Emit(receiverID, EventMessage, payload)

	d.log.Info("message sent",
		zap.Uint("messageId", message.ID),
		zap.Uint("senderId", senderID),
		zap.Uint("receiverId", receiverID))
	if d.events != nil {
		d.events.Publish("message.created", payload)
	}
	return message, nil
}

// Delete soft-deletes a message on behalf of its original sender and routes
// a deletion notice to both parties. An already-deleted message counts as
// gone: a repeated delete fails with ErrMessageNotFound and never re-emits
// the notice.
func (d *Delivery) Delete(requesterID, messageID uint) (*model.Message, error) {
	message, err := d.store.MessageByID(messageID)
	if err != nil {
		return nil, err
	}
	if message.IsDeleted {
		return nil, ErrMessageNotFound
	}
	if message.SenderID != requesterID {
		return nil, ErrNotMessageSender
	}

	if err := d.store.MarkMessageDeleted(messageID); err != nil {
		return nil, err
	}
	message.IsDeleted = true

	payload := MessageDeletedPayload{MessageId: messageID}
	d.emitter.Emit(message.SenderID, EventMessageDeleted, payload)
	d.emitter.Emit(message.ReceiverID, EventMessageDeleted, payload)

	d.log.Info("message deleted",
		zap.Uint("messageId", messageID),
		zap.Uint("requesterId", requesterID))
	if d.events != nil {
		d.events.Publish("message.deleted", payload)
	}
	return message, nil
}

// Typing forwards a typing indicator to the receiver's live sessions.
// Fire-and-forget: nothing is persisted, nothing is queued, and without a
// live receiver session the event is silently dropped.
func (d *Delivery) Typing(senderID, receiverID uint) {
	if !d.registry.Online(receiverID) {
		return
	}
	d.emitter.Emit(receiverID, EventTyping, TypingPayload{SenderId: senderID})
}

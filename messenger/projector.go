package messenger

import "time"

// Conversation is a derived view: one row per counterpart carrying the most
// recent non-deleted message of that pair. Nothing here is persisted.
type Conversation struct {
	User          UserPayload `json:"user"`
	LastMessage   string      `json:"lastMessage"`
	LastMessageAt time.Time   `json:"lastMessageAt"`
}

// Projector builds the paginated conversation and history views consumed
// over REST. Read path only; it shares the soft-delete and ordering rules
// with the delivery engine but adds no concurrency of its own.
type Projector struct {
	store Store
}

func NewProjector(store Store) *Projector {
	return &Projector{store: store}
}

// Conversations groups the user's messages by counterpart, keeps the most
// recent message per counterpart and orders counterparts newest first. Ties
// on equal timestamps resolve by message id descending, which the store's
// ordering already guarantees.
func (p *Projector) Conversations(userID uint, page, limit int) ([]Conversation, int64, error) {
	messages, err := p.store.MessagesInvolving(userID)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[uint]struct{})
	conversations := []Conversation{}
	for i := range messages {
		message := &messages[i]
		other := &message.Sender
		if message.SenderID == userID {
			other = &message.Receiver
		}
		if _, ok := seen[other.ID]; ok {
			continue
		}
		seen[other.ID] = struct{}{}
		conversations = append(conversations, Conversation{
			User:          NewUserPayload(other),
			LastMessage:   message.Content,
			LastMessageAt: message.CreatedAt,
		})
	}

	total := int64(len(conversations))
	offset := (page - 1) * limit
	if offset >= len(conversations) {
		return []Conversation{}, total, nil
	}
	end := offset + limit
	if end > len(conversations) {
		end = len(conversations)
	}
	return conversations[offset:end], total, nil
}

// Messages returns the non-deleted messages between the user and the
// counterpart in chronological order. The counterpart must exist.
func (p *Projector) Messages(userID, otherUserID uint, page, limit int) ([]MessagePayload, int64, error) {
	if _, err := p.store.UserByID(otherUserID); err != nil {
		return nil, 0, err
	}

	messages, total, err := p.store.MessagesBetween(userID, otherUserID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}

	payloads := make([]MessagePayload, 0, len(messages))
	for i := range messages {
		payloads = append(payloads, NewMessagePayload(&messages[i]))
	}
	return payloads, total, nil
}

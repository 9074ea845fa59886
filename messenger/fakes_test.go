package messenger

import (
	"errors"
	"sort"
	"time"

	"chat-service/model"

	"gorm.io/gorm"
)

// fakeStore is an in-memory Store for exercising the core without a
// database.
type fakeStore struct {
	users    map[uint]*model.User
	follows  map[[2]uint]bool
	messages []*model.Message
	online   map[uint]bool
	nextID   uint
	now      time.Time

	onlineErr    error
	followersErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[uint]*model.User),
		follows: make(map[[2]uint]bool),
		online:  make(map[uint]bool),
		now:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) addUser(id uint, username string) *model.User {
	user := &model.User{Model: gorm.Model{ID: id}, Username: username, Email: username + "@example.com"}
	s.users[id] = user
	return user
}

func (s *fakeStore) addFollow(followerID, followingID uint) {
	s.follows[[2]uint{followerID, followingID}] = true
}

func (s *fakeStore) UserByID(id uint) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeStore) IsFollowing(followerID, followingID uint) (bool, error) {
	return s.follows[[2]uint{followerID, followingID}], nil
}

func (s *fakeStore) FollowerIDs(userID uint) ([]uint, error) {
	if s.followersErr != nil {
		return nil, s.followersErr
	}
	var ids []uint
	for pair := range s.follows {
		if pair[1] == userID {
			ids = append(ids, pair[0])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *fakeStore) SetOnline(userID uint, online bool) error {
	if s.onlineErr != nil {
		return s.onlineErr
	}
	s.online[userID] = online
	return nil
}

func (s *fakeStore) CreateMessage(message *model.Message) error {
	s.nextID++
	s.now = s.now.Add(time.Second)
	message.ID = s.nextID
	message.CreatedAt = s.now
	copied := *message
	s.messages = append(s.messages, &copied)
	return nil
}

// addMessage seeds a message row directly, bypassing delivery validation.
func (s *fakeStore) addMessage(senderID, receiverID uint, content string, createdAt time.Time) *model.Message {
	s.nextID++
	message := &model.Message{
		Model:      gorm.Model{ID: s.nextID, CreatedAt: createdAt},
		SenderID:   senderID,
		ReceiverID: receiverID,
		Sender:     *s.users[senderID],
		Receiver:   *s.users[receiverID],
		Content:    content,
	}
	s.messages = append(s.messages, message)
	return message
}

func (s *fakeStore) MessageByID(id uint) (*model.Message, error) {
	for _, message := range s.messages {
		if message.ID == id {
			copied := *message
			return &copied, nil
		}
	}
	return nil, ErrMessageNotFound
}

func (s *fakeStore) MarkMessageDeleted(id uint) error {
	for _, message := range s.messages {
		if message.ID == id {
			message.IsDeleted = true
			return nil
		}
	}
	return ErrMessageNotFound
}

func (s *fakeStore) MessagesBetween(userID, otherUserID uint, offset, limit int) ([]model.Message, int64, error) {
	var between []model.Message
	for _, message := range s.messages {
		if message.IsDeleted {
			continue
		}
		pair := (message.SenderID == userID && message.ReceiverID == otherUserID) ||
			(message.SenderID == otherUserID && message.ReceiverID == userID)
		if pair {
			between = append(between, *message)
		}
	}
	sort.Slice(between, func(i, j int) bool {
		if between[i].CreatedAt.Equal(between[j].CreatedAt) {
			return between[i].ID < between[j].ID
		}
		return between[i].CreatedAt.Before(between[j].CreatedAt)
	})

	total := int64(len(between))
	if offset >= len(between) {
		return []model.Message{}, total, nil
	}
	end := offset + limit
	if end > len(between) {
		end = len(between)
	}
	return between[offset:end], total, nil
}

func (s *fakeStore) MessagesInvolving(userID uint) ([]model.Message, error) {
	var involving []model.Message
	for _, message := range s.messages {
		if message.IsDeleted {
			continue
		}
		if message.SenderID == userID || message.ReceiverID == userID {
			involving = append(involving, *message)
		}
	}
	sort.Slice(involving, func(i, j int) bool {
		if involving[i].CreatedAt.Equal(involving[j].CreatedAt) {
			return involving[i].ID > involving[j].ID
		}
		return involving[i].CreatedAt.After(involving[j].CreatedAt)
	})
	return involving, nil
}

// recorded is one emitted event.
type recorded struct {
	UserID  uint
	Event   string
	Payload any
}

type recordingEmitter struct {
	events []recorded
}

func (e *recordingEmitter) Emit(userID uint, event string, payload any) {
	e.events = append(e.events, recorded{UserID: userID, Event: event, Payload: payload})
}

func (e *recordingEmitter) forUser(userID uint, event string) []recorded {
	var out []recorded
	for _, r := range e.events {
		if r.UserID == userID && r.Event == event {
			out = append(out, r)
		}
	}
	return out
}

type recordingPublisher struct {
	actions []string
}

func (p *recordingPublisher) Publish(action string, payload any) {
	p.actions = append(p.actions, action)
}

var errStorage = errors.New("storage unavailable")

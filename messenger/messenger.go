// Package messenger holds the realtime messaging core: the session
// registry, presence tracker, message delivery engine and the read-side
// conversation projector. Transport (socket.io, REST) and persistence
// (gorm) are injected through the interfaces below.
package messenger

import "chat-service/model"

// Store is the persistence collaborator. The durable message/online-flag
// store is the system of record; single-row writes are atomic, nothing here
// needs cross-row transactions.
type Store interface {
	// UserByID returns ErrUserNotFound when no such user exists.
	UserByID(id uint) (*model.User, error)
	// IsFollowing reports whether follower follows following.
	IsFollowing(followerID, followingID uint) (bool, error)
	// FollowerIDs lists the ids of users following userID.
	FollowerIDs(userID uint) ([]uint, error)
	// SetOnline flips the durable online flag. Idempotent.
	SetOnline(userID uint, online bool) error

	CreateMessage(message *model.Message) error
	// MessageByID returns ErrMessageNotFound when no such row exists.
	MessageByID(id uint) (*model.Message, error)
	MarkMessageDeleted(id uint) error

	// MessagesBetween returns the non-deleted messages between the pair in
	// chronological order, plus the total count for pagination.
	MessagesBetween(userID, otherUserID uint, offset, limit int) ([]model.Message, int64, error)
	// MessagesInvolving returns all non-deleted messages the user sent or
	// received, newest first (created_at desc, id desc), with sender and
	// receiver preloaded.
	MessagesInvolving(userID uint) ([]model.Message, error)
}

// Emitter pushes an event to every live session of a user. Emitting to a
// user with no sessions is a no-op; realtime delivery is at-most-once and
// the durable record covers the read path.
type Emitter interface {
	Emit(userID uint, event string, payload any)
}

// Publisher forwards domain events to the feed/activity collaborators.
// Best-effort: implementations log failures, callers never see them.
type Publisher interface {
	Publish(action string, payload any)
}

// Authenticator validates an inbound connection credential before the
// session is admitted anywhere.
type Authenticator interface {
	// Authenticate returns the user id for a valid credential, or
	// ErrAuthFailed for a missing, malformed or expired one.
	Authenticate(rawCredential string) (uint, error)
}

// Config carries the messaging policy knobs.
type Config struct {
	// MaxMessageLength bounds message content after trimming.
	MaxMessageLength int
	// RequireFollow gates sending on an existing follow edge. The
	// follow-gated policy is the default; disabling it falls back to
	// receiver-existence checks only.
	RequireFollow bool
	DefaultPageLimit int
	MaxPageLimit     int
}

// DefaultConfig mirrors the original chat constants.
func DefaultConfig() Config {
	return Config{
		MaxMessageLength: 2000,
		RequireFollow:    true,
		DefaultPageLimit: 20,
		MaxPageLimit:     100,
	}
}

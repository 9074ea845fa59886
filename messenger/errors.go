package messenger

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind classifies a messaging error so transport boundaries can map it
// without matching on message strings.
type ErrorKind int

const (
	KindAuth ErrorKind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindForbidden
	KindInternal
)

// Error is the messaging error taxonomy. Socket handlers turn it into an
// "error" event plus ack payload; REST handlers map Kind to an HTTP status.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrAuthFailed        = &Error{KindAuth, "WebSocket authentication failed"}
	ErrCannotMessageSelf = &Error{KindValidation, "Cannot send message to yourself"}
	ErrInvalidContent    = &Error{KindValidation, "Invalid message content"}
	ErrInvalidPayload    = &Error{KindValidation, "Malformed event payload"}
	ErrNotFollowing      = &Error{KindAuthorization, "You can only message users you follow"}
	ErrUserNotFound      = &Error{KindNotFound, "User not found"}
	ErrMessageNotFound   = &Error{KindNotFound, "Message not found"}
	ErrNotMessageSender  = &Error{KindForbidden, "You are not authorized to delete this message"}
)

// HTTPStatus maps an error to the REST status code for its kind. Anything
// outside the taxonomy is an internal error.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return fiber.StatusInternalServerError
	}
	switch e.Kind {
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindValidation:
		return fiber.StatusBadRequest
	case KindAuthorization, KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// ClientMessage returns the text safe to surface to the caller. Internal
// failures are masked.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Internal server error"
}

package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
	KindInvalidInstant Kind = "invalid_instant"
)

// Error is a failure that is safe to show to the caller as is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func InvalidInstant(value string) *Error {
	return &Error{Kind: KindInvalidInstant, Message: fmt.Sprintf("invalid date/time: %q", value)}
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindInvalidInstant:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// HTTPStatus returns the status code and message for err, and false when err is
// not a caller-facing error.
func HTTPStatus(err error) (int, string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status(), e.Message, true
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message, true
	}
	return fiber.StatusInternalServerError, "", false
}

package booking

import (
	"errors"
	"fmt"
)

// ErrorKind classifies lifecycle outcomes for the transport layer.
type ErrorKind int

const (
	// KindUnknown covers errors that did not originate in the engine.
	KindUnknown ErrorKind = iota
	// KindNotFound means the entity is absent.
	KindNotFound
	// KindForbidden means the caller is not the required owner or creator.
	KindForbidden
	// KindConflict means a uniqueness or state race was lost.
	KindConflict
	// KindInvalidState means a precondition on status or time failed.
	KindInvalidState
	// KindStoreUnavailable means the underlying store kept failing transiently.
	KindStoreUnavailable
)

// Error is a structured lifecycle outcome with a stable machine-readable code.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Stable codes, one per distinct fail-fast outcome.
const (
	CodeSessionNotFound     = "session-not-found"
	CodeSessionNotAvailable = "session-not-available"
	CodeSessionInPast       = "session-in-past"
	CodeSelfBooking         = "self-booking"
	CodeAlreadyBooked       = "already-booked"
	CodeBookingNotFound     = "booking-not-found"
	CodeNotOwner            = "not-owner"
	CodeNotAuthorized       = "not-authorized"
	CodeNotCancellable      = "not-cancellable"
	CodeWindowClosed        = "cancellation-window-closed"
	CodeStoreUnavailable    = "store-unavailable"
)

func notFound(code, msg string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func forbidden(code, msg string) error {
	return &Error{Kind: KindForbidden, Code: code, Message: msg}
}

func conflict(code, msg string) error {
	return &Error{Kind: KindConflict, Code: code, Message: msg}
}

func invalidState(code, msg string) error {
	return &Error{Kind: KindInvalidState, Code: code, Message: msg}
}

func storeUnavailable(err error) error {
	return &Error{Kind: KindStoreUnavailable, Code: CodeStoreUnavailable, Message: err.Error()}
}

// KindOf extracts the kind from an engine error, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf extracts the stable code from an engine error, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

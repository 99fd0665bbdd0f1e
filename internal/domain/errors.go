package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the chat core. Callers wrap them with context using
// fmt.Errorf("%w: ...") and test with errors.Is.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrAlreadyMember    = errors.New("already a member")
	ErrNotMember        = errors.New("not a member")
	ErrPartialFailure   = errors.New("partial failure")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
)

// Kind is the transport-neutral name of an error kind.
type Kind string

const (
	KindInvalidArgument  Kind = "invalid_argument"
	KindNotFound         Kind = "not_found"
	KindInvalidState     Kind = "invalid_state"
	KindAlreadyMember    Kind = "already_member"
	KindNotMember        Kind = "not_member"
	KindPartialFailure   Kind = "partial_failure"
	KindStoreUnavailable Kind = "store_unavailable"
	KindUnauthenticated  Kind = "unauthenticated"
	KindForbidden        Kind = "forbidden"
	KindInternal         Kind = "internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	// PartialFailure wraps its cause, so it must be matched before the cause's kind.
	{ErrPartialFailure, KindPartialFailure},
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrNotFound, KindNotFound},
	{ErrInvalidState, KindInvalidState},
	{ErrAlreadyMember, KindAlreadyMember},
	{ErrNotMember, KindNotMember},
	{ErrStoreUnavailable, KindStoreUnavailable},
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrForbidden, KindForbidden},
}

// KindOf returns the kind of err, or KindInternal if it carries none.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// StoreError classifies an unexpected persistence failure.
func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

// PartialFailureError reports a message that was appended while the chat's
// latest message pointer could not be advanced. The message is durable.
type PartialFailureError struct {
	ChatID    string
	MessageID string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure: message %s appended to chat %s but latest message not updated: %v",
		e.MessageID, e.ChatID, e.Err)
}

func (e *PartialFailureError) Unwrap() []error {
	return []error{ErrPartialFailure, e.Err}
}

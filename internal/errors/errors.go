// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers (HTTP layer, client collections) can
// distinguish transport, auth, not-found, conflict and validation failures
// without matching on message strings.
type Kind int

const (
	KindTransport Kind = iota
	KindUnauthorized
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "transport"
	}
}

// Error is the common shape of all domain errors.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from any error, defaulting to KindTransport.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindTransport
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }

// Helper constructors

func NewCampaignNotFound(id string) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("campaign %s not found", id)}
}

func NewChannelNotFound(id string) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("channel %s not found", id)}
}

func NewPostNotFound(id string) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("post %s not found", id)}
}

func NewChannelAlreadyConnected(channelID string) error {
	return &Error{Kind: KindConflict, Message: "Channel already connected"}
}

func NewUnauthorized() error {
	return &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
}

func NewValidation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NewTransport(msg string, err error) error {
	return &Error{Kind: KindTransport, Message: msg, Err: err}
}

package errs

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failure so it can be reported to the requester.
type Kind int

const (
	// KindUnknown is any error that was not classified.
	KindUnknown Kind = iota
	NotConfigured
	UnknownTopic
	DuplicateTopicKey
	TopicNotFound
	TopicLimitExceeded
	InvalidTopicKey
	TooManyTopicsForButtons
	DuplicateTicket
	CooldownActive
	AlreadyClaimed
	AlreadyClaimedByOther
	InvalidTransition
	ControlPanelNotFound
	NotATicketChannel
	InvalidName
	Forbidden
	MissingExternalPermission
	ExternalCallFailed
)

var kindNames = map[Kind]string{
	KindUnknown:               "Unknown",
	NotConfigured:             "NotConfigured",
	UnknownTopic:              "UnknownTopic",
	DuplicateTopicKey:         "DuplicateTopicKey",
	TopicNotFound:             "TopicNotFound",
	TopicLimitExceeded:        "TopicLimitExceeded",
	InvalidTopicKey:           "InvalidTopicKey",
	TooManyTopicsForButtons:   "TooManyTopicsForButtons",
	DuplicateTicket:           "DuplicateTicket",
	CooldownActive:            "CooldownActive",
	AlreadyClaimed:            "AlreadyClaimed",
	AlreadyClaimedByOther:     "AlreadyClaimedByOther",
	InvalidTransition:         "InvalidTransition",
	ControlPanelNotFound:      "ControlPanelNotFound",
	NotATicketChannel:         "NotATicketChannel",
	InvalidName:               "InvalidName",
	Forbidden:                 "Forbidden",
	MissingExternalPermission: "MissingExternalPermission",
	ExternalCallFailed:        "ExternalCallFailed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified failure.
type Error struct {
	// Kind is the classification of the failure.
	Kind Kind

	// Message is a human-readable description.
	Message string

	// ChannelID references a channel relevant to the failure, e.g. the existing ticket on DuplicateTicket.
	ChannelID string

	// UserID references a user relevant to the failure, e.g. the current claimer on AlreadyClaimedByOther.
	UserID string

	// Remaining is the time left on an active cooldown.
	Remaining time.Duration

	// Capability names the missing permission on MissingExternalPermission.
	Capability string

	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new classified error.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// As returns the first *Error in the chain of err.
func As(err error) (*Error, bool) {
	e := new(Error)
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in the chain, or KindUnknown.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Package event defines the events fanned out on the session bus.
// Every inbound frame is normalized into exactly one of these types
// before any consumer sees it.
package event

import (
	"time"

	"chatlink/domain"
)

type Kind string

const (
	MessageReceivedKind      Kind = "MESSAGE_RECEIVED"
	NotificationReceivedKind Kind = "NOTIFICATION_RECEIVED"
	TypingStartedKind        Kind = "TYPING_STARTED"
	TypingStoppedKind        Kind = "TYPING_STOPPED"
	StateChangedKind         Kind = "CONNECTION_STATE_CHANGED"
)

type DomainEvent interface {
	Kind() Kind
	OccurredAt() time.Time
}

// MessageReceived carries an in-room message relayed by the server.
type MessageReceived struct {
	Message domain.Message
	At      time.Time
}

func (e MessageReceived) Kind() Kind            { return MessageReceivedKind }
func (e MessageReceived) OccurredAt() time.Time { return e.At }

// NotificationReceived is the out-of-room delivery for a recipient with no
// room joined. It carries less than a full message: no id, no target.
type NotificationReceived struct {
	SenderID   string
	SenderName string
	Content    string
	SentAt     time.Time
	At         time.Time
}

func (e NotificationReceived) Kind() Kind            { return NotificationReceivedKind }
func (e NotificationReceived) OccurredAt() time.Time { return e.At }

type TypingStarted struct {
	UserID string
	At     time.Time
}

func (e TypingStarted) Kind() Kind            { return TypingStartedKind }
func (e TypingStarted) OccurredAt() time.Time { return e.At }

type TypingStopped struct {
	UserID string
	At     time.Time
}

func (e TypingStopped) Kind() Kind            { return TypingStoppedKind }
func (e TypingStopped) OccurredAt() time.Time { return e.At }

// StateChanged reports connection lifecycle transitions so UI surfaces can
// disable input while disconnected.
type StateChanged struct {
	State domain.ConnectionState
	At    time.Time
}

func (e StateChanged) Kind() Kind            { return StateChangedKind }
func (e StateChanged) OccurredAt() time.Time { return e.At }

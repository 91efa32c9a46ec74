// Package domain contains core concepts of the chat subsystem.
// This file defines Message values and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Message represents an immutable chat event exchanged between two users.
type Message struct {
	ID         string    `json:"id"`
	Content    string    `json:"content" validate:"required,max=2000"`
	SenderID   string    `json:"senderId" validate:"required"`
	SenderName string    `json:"senderName"`
	TargetID   string    `json:"targetId" validate:"required"`
	CreatedAt  time.Time `json:"timestamp"`
}

// NewMessage builds a validated outbound message with a client-generated id.
// The id is a composite of sender, target, send time and a random suffix so
// the local copy can be recognized before any server-assigned identifier
// exists.
func NewMessage(senderID, senderName, targetID, content string, at time.Time) (Message, error) {
	m := Message{
		ID:         ComposeMessageID(senderID, targetID, at),
		Content:    content,
		SenderID:   senderID,
		SenderName: senderName,
		TargetID:   targetID,
		CreatedAt:  at,
	}
	if err := validate.Struct(m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// ComposeMessageID formats the client-side composite identifier.
// The UUID suffix is a collision disconnector if the same pair exchanges
// two messages in the same nanosecond.
func ComposeMessageID(senderID, targetID string, at time.Time) string {
	return fmt.Sprintf("%s:%s:%019d:%s", senderID, targetID, at.UnixNano(), uuid.NewString())
}

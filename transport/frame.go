// Package transport carries the wire protocol: one persistent websocket
// per session, JSON frames tagged with an event name.
package transport

import (
	"encoding/json"
	"time"

	"chatlink/domain"
)

// Event names exchanged with the server.
const (
	EventJoinChat         = "join-chat"
	EventSendMessage      = "send-message"
	EventReceiveMessage   = "receive-message"
	EventChatNotification = "chat-notification"
	EventTyping           = "typing"
	EventStopTyping       = "stop-typing"
	EventUserTyping       = "user-typing"
	EventUserStopTyping   = "user-stopped-typing"
)

// Frame is the envelope of every frame in both directions.
type Frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type JoinPayload struct {
	RoomID       string `json:"roomId"`
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId"`
}

type TypingPayload struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type UserTypingPayload struct {
	UserID string `json:"userId"`
}

// NotificationPayload is the out-of-room delivery shape: the server pushes
// it to recipients that have no room joined for the sender.
type NotificationPayload struct {
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewFrame marshals a payload into a tagged envelope.
func NewFrame(event string, payload any) (Frame, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Event: event, Payload: raw}, nil
}

func JoinFrame(localID, partnerID string) (Frame, error) {
	return NewFrame(EventJoinChat, JoinPayload{
		RoomID:       domain.RoomKey(localID, partnerID),
		UserID:       localID,
		TargetUserID: partnerID,
	})
}

func MessageFrame(m domain.Message) (Frame, error) {
	return NewFrame(EventSendMessage, m)
}

func TypingFrame(event, localID, partnerID string) (Frame, error) {
	return NewFrame(event, TypingPayload{
		RoomID: domain.RoomKey(localID, partnerID),
		UserID: localID,
	})
}

// DecodeMessage unmarshals the payload of a receive-message frame.
func DecodeMessage(f Frame) (domain.Message, error) {
	var m domain.Message
	err := json.Unmarshal(f.Payload, &m)
	return m, err
}

func DecodeNotification(f Frame) (NotificationPayload, error) {
	var n NotificationPayload
	err := json.Unmarshal(f.Payload, &n)
	return n, err
}

func DecodeUserTyping(f Frame) (UserTypingPayload, error) {
	var p UserTypingPayload
	err := json.Unmarshal(f.Payload, &p)
	return p, err
}

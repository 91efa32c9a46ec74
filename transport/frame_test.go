package transport

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chatlink/domain"
)

func decode(f Frame, out any) error {
	return json.Unmarshal(f.Payload, out)
}

func TestJoinFrame_RoomIsDirectionless(t *testing.T) {
	req := require.New(t)

	forward, err := JoinFrame("1", "2")
	req.NoError(err)
	backward, err := JoinFrame("2", "1")
	req.NoError(err)

	var fromForward, fromBackward JoinPayload
	req.NoError(decode(forward, &fromForward))
	req.NoError(decode(backward, &fromBackward))

	req.Equal("1-2", fromForward.RoomID)
	req.Equal(fromForward.RoomID, fromBackward.RoomID)
	req.Equal("1", fromForward.UserID)
	req.Equal("2", fromForward.TargetUserID)
}

func TestMessageFrame_RoundTrip(t *testing.T) {
	req := require.New(t)

	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	original := domain.Message{
		ID:         domain.ComposeMessageID("1", "2", at),
		Content:    "Hola",
		SenderID:   "1",
		SenderName: "Alice",
		TargetID:   "2",
		CreatedAt:  at,
	}

	frame, err := MessageFrame(original)
	req.NoError(err)
	req.Equal(EventSendMessage, frame.Event)

	decoded, err := DecodeMessage(frame)
	req.NoError(err)
	req.Equal(original.ID, decoded.ID)
	req.Equal(original.Content, decoded.Content)
	req.True(original.CreatedAt.Equal(decoded.CreatedAt))
}

func TestTypingFrame_CarriesRoomAndSender(t *testing.T) {
	req := require.New(t)

	frame, err := TypingFrame(EventTyping, "9", "3")
	req.NoError(err)
	req.Equal(EventTyping, frame.Event)

	var payload TypingPayload
	req.NoError(decode(frame, &payload))
	req.Equal("3-9", payload.RoomID)
	req.Equal("9", payload.UserID)
}

func TestDecodeNotification(t *testing.T) {
	req := require.New(t)

	sentAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	frame, err := NewFrame(EventChatNotification, NotificationPayload{
		SenderID:   "1",
		SenderName: "Alice",
		Content:    "Hola",
		Timestamp:  sentAt,
	})
	req.NoError(err)

	decoded, err := DecodeNotification(frame)
	req.NoError(err)
	req.Equal("Alice", decoded.SenderName)
	req.True(sentAt.Equal(decoded.Timestamp))
}

package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chatlink/domain"
	"chatlink/domain/event"
	"chatlink/errors"
	"chatlink/transport"
)

func TestNormalize(t *testing.T) {
	sentAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	messageFrame, err := transport.NewFrame(transport.EventReceiveMessage, domain.Message{
		ID: "m1", SenderID: "1", SenderName: "Alice", TargetID: "2",
		Content: "Hola", CreatedAt: sentAt,
	})
	require.NoError(t, err)

	notificationFrame, err := transport.NewFrame(transport.EventChatNotification, transport.NotificationPayload{
		SenderID: "1", SenderName: "Alice", Content: "Hola", Timestamp: sentAt,
	})
	require.NoError(t, err)

	typingFrame, err := transport.NewFrame(transport.EventUserTyping, transport.UserTypingPayload{UserID: "1"})
	require.NoError(t, err)

	stopTypingFrame, err := transport.NewFrame(transport.EventUserStopTyping, transport.UserTypingPayload{UserID: "1"})
	require.NoError(t, err)

	testcases := []struct {
		name   string
		frame  transport.Frame
		assert func(req *require.Assertions, evt event.DomainEvent)
	}{
		{
			name:  "message frame becomes MessageReceived",
			frame: messageFrame,
			assert: func(req *require.Assertions, evt event.DomainEvent) {
				received, ok := evt.(event.MessageReceived)
				req.True(ok)
				req.Equal("m1", received.Message.ID)
				req.Equal("Hola", received.Message.Content)
			},
		},
		{
			name:  "notification frame becomes NotificationReceived",
			frame: notificationFrame,
			assert: func(req *require.Assertions, evt event.DomainEvent) {
				received, ok := evt.(event.NotificationReceived)
				req.True(ok)
				req.Equal("1", received.SenderID)
				req.Equal(sentAt, received.SentAt.UTC())
			},
		},
		{
			name:  "typing frame becomes TypingStarted",
			frame: typingFrame,
			assert: func(req *require.Assertions, evt event.DomainEvent) {
				started, ok := evt.(event.TypingStarted)
				req.True(ok)
				req.Equal("1", started.UserID)
			},
		},
		{
			name:  "stop typing frame becomes TypingStopped",
			frame: stopTypingFrame,
			assert: func(req *require.Assertions, evt event.DomainEvent) {
				stopped, ok := evt.(event.TypingStopped)
				req.True(ok)
				req.Equal("1", stopped.UserID)
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			evt, err := Normalize(tc.frame)
			req.NoError(err)
			tc.assert(req, evt)
		})
	}
}

func TestNormalize_UnknownEvent(t *testing.T) {
	req := require.New(t)
	frame, err := transport.NewFrame("presence-update", struct{}{})
	req.NoError(err)

	_, err = Normalize(frame)
	req.ErrorIs(err, errors.ErrUnknownEvent)
}

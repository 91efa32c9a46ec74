package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"chatlink/domain"
	"chatlink/domain/event"
	"chatlink/store"
)

type fixture struct {
	notifier *Notifier
	unread   *store.UnreadStore
	active   string
}

func newFixture() *fixture {
	f := &fixture{unread: store.NewUnreadStore()}
	f.notifier = New(
		logs.GetLoggerFromLevel(slog.LevelDebug),
		f.unread,
		func() string { return "2" },
		func() string { return f.active },
	)
	return f
}

func inbound(senderID, content string, at time.Time) event.MessageReceived {
	return event.MessageReceived{
		Message: domain.Message{
			ID:         senderID + ":" + content,
			SenderID:   senderID,
			SenderName: "User " + senderID,
			TargetID:   "2",
			Content:    content,
			CreatedAt:  at,
		},
		At: at,
	}
}

func TestNotifier_ToastForInactiveSender(t *testing.T) {
	req := require.New(t)
	f := newFixture()

	req.NoError(f.notifier.Consume(context.Background(), inbound("1", "Hola", time.Now())))

	toasts := f.notifier.Toasts()
	req.Len(toasts, 1)
	req.Equal("1", toasts[0].SenderID)
	req.Equal("Hola", toasts[0].Preview)
}

func TestNotifier_SuppressesActivePartner(t *testing.T) {
	req := require.New(t)
	f := newFixture()
	f.active = "1"

	req.NoError(f.notifier.Consume(context.Background(), inbound("1", "Hola", time.Now())))
	req.Empty(f.notifier.Toasts())
}

func TestNotifier_SuppressesOwnEchoes(t *testing.T) {
	req := require.New(t)
	f := newFixture()

	req.NoError(f.notifier.Consume(context.Background(), inbound("2", "mine", time.Now())))
	req.Empty(f.notifier.Toasts())
}

func TestNotifier_NotificationEventBecomesToast(t *testing.T) {
	req := require.New(t)
	f := newFixture()

	sentAt := time.Now().Add(-time.Minute)
	req.NoError(f.notifier.Consume(context.Background(), event.NotificationReceived{
		SenderID:   "3",
		SenderName: "Chloe",
		Content:    "ping",
		SentAt:     sentAt,
		At:         time.Now(),
	}))

	toasts := f.notifier.Toasts()
	req.Len(toasts, 1)
	req.Equal("Chloe", toasts[0].SenderName)
	req.True(sentAt.Equal(toasts[0].At))
}

func TestNotifier_FeedIsBoundedNewestFirst(t *testing.T) {
	req := require.New(t)
	f := newFixture()

	base := time.Now()
	for i := 0; i < maxToasts+5; i++ {
		at := base.Add(time.Duration(i) * time.Second)
		req.NoError(f.notifier.Consume(context.Background(), inbound("1", fmt.Sprintf("msg %d", i), at)))
	}

	toasts := f.notifier.Toasts()
	req.Len(toasts, maxToasts)
	req.Equal(fmt.Sprintf("msg %d", maxToasts+4), toasts[0].Preview)
	for i := 1; i < len(toasts); i++ {
		req.True(toasts[i].At.Before(toasts[i-1].At))
	}
}

func TestNotifier_TotalUnreadDelegatesToStore(t *testing.T) {
	req := require.New(t)
	f := newFixture()

	req.Zero(f.notifier.TotalUnread())
	f.unread.AddUnread("1", "Alice", "Hola", time.Now())
	f.unread.AddUnread("3", "Chloe", "ping", time.Now())
	req.Equal(2, f.notifier.TotalUnread())

	f.unread.MarkRead("1")
	req.Equal(1, f.notifier.TotalUnread())
}

func TestNotifier_BadgesSortedByRecency(t *testing.T) {
	req := require.New(t)
	f := newFixture()

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	f.unread.AddUnread("1", "Alice", "old", older)
	f.unread.AddUnread("3", "Chloe", "new", newer)

	badges := f.notifier.Badges()
	req.Len(badges, 2)
	req.Equal("3", badges[0].PartnerID)
	req.Equal("1", badges[1].PartnerID)
}

func TestNotifier_DismissKeepsUnread(t *testing.T) {
	req := require.New(t)
	f := newFixture()

	f.unread.AddUnread("1", "Alice", "Hola", time.Now())
	req.NoError(f.notifier.Consume(context.Background(), inbound("1", "Hola", time.Now())))

	f.notifier.Dismiss()
	req.Empty(f.notifier.Toasts())
	req.Equal(1, f.notifier.TotalUnread())
}

// Package notifier backs the global floating surface: total unread count,
// per-partner badges and a bounded feed of recent toasts. It observes the
// session bus and reads the stores; it never mutates them, so it cannot
// double-count what the router already recorded.
package notifier

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"chatlink/domain"
	"chatlink/domain/event"
	"chatlink/store"
)

const maxToasts = 20

// Toast is one transient notification entry.
type Toast struct {
	SenderID   string
	SenderName string
	Preview    string
	At         time.Time
}

type Notifier struct {
	mu            sync.RWMutex
	log           *slog.Logger
	unread        store.IUnreadStore
	activePartner func() string
	self          func() string
	toasts        []Toast
}

func New(log *slog.Logger, unread store.IUnreadStore, self, activePartner func() string) *Notifier {
	return &Notifier{
		log:           log,
		unread:        unread,
		self:          self,
		activePartner: activePartner,
	}
}

// Consume turns inbound activity into toasts, suppressed for the sender
// whose conversation is currently open.
func (n *Notifier) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageReceived:
		n.push(evt.Message.SenderID, evt.Message.SenderName, evt.Message.Content, evt.Message.CreatedAt)
	case event.NotificationReceived:
		n.push(evt.SenderID, evt.SenderName, evt.Content, evt.SentAt)
	case event.StateChanged:
		if evt.State != domain.StateConnected {
			n.log.Debug("Notifier saw connection state", "state", evt.State)
		}
	}
	return nil
}

// TotalUnread delegates to the unread store; the notifier never keeps its
// own counter.
func (n *Notifier) TotalUnread() int {
	return n.unread.TotalUnread()
}

// Badges returns the per-partner unread buckets, most recent first.
func (n *Notifier) Badges() []domain.UnreadBucket {
	buckets := n.unread.Buckets()
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].LastTimestamp.After(buckets[j].LastTimestamp)
	})
	return buckets
}

// Toasts returns the recent notification feed, newest first.
func (n *Notifier) Toasts() []Toast {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Dismiss clears the toast feed, keeping unread state untouched.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = nil
}

func (n *Notifier) push(senderID, senderName, content string, at time.Time) {
	if senderID == n.self() || senderID == n.activePartner() {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append([]Toast{{
		SenderID:   senderID,
		SenderName: senderName,
		Preview:    content,
		At:         at,
	}}, n.toasts...)
	if len(n.toasts) > maxToasts {
		n.toasts = n.toasts[:maxToasts]
	}
}

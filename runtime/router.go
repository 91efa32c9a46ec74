package runtime

import (
	"context"
	"log/slog"
	"time"

	"chatlink/domain"
	"chatlink/domain/event"
	"chatlink/observability"
	"chatlink/projection"
	"chatlink/search"
	"chatlink/store"
	"chatlink/typing"
)

// Router is the single logical writer of transcript, unread and recent
// state. Every inbound event passes through here exactly once:
//
//	self echo  -> dropped (the sender already has its optimistic copy)
//	duplicate  -> dropped by the transcript's deduplicator
//	active P   -> appended to the open transcript, unread suppressed
//	inactive P -> unread bucket created/incremented
//
// and every surviving message upserts the recent-conversations cache.
type Router struct {
	log        *slog.Logger
	self       func() string
	transcript *projection.Transcript
	unread     store.IUnreadStore
	recent     store.IRecentCache
	typing     *typing.Controller
	monitor    *observability.Monitor
	index      *search.Index
	persist    func(domain.ConversationSummary)
}

func NewRouter(log *slog.Logger, self func() string, transcript *projection.Transcript,
	unread store.IUnreadStore, recent store.IRecentCache, typingCtl *typing.Controller,
	monitor *observability.Monitor) *Router {
	return &Router{
		log:        log,
		self:       self,
		transcript: transcript,
		unread:     unread,
		recent:     recent,
		typing:     typingCtl,
		monitor:    monitor,
	}
}

// WithSearchIndex mirrors transcript appends into the session search index.
func (r *Router) WithSearchIndex(index *search.Index) *Router {
	r.index = index
	return r
}

// WithPersistence forwards every recent-cache upsert to a snapshot writer.
func (r *Router) WithPersistence(persist func(domain.ConversationSummary)) *Router {
	r.persist = persist
	return r
}

func (r *Router) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageReceived:
		r.handleMessage(evt.Message)
	case event.NotificationReceived:
		r.handleNotification(evt)
	case event.TypingStarted:
		r.typing.Started(evt.UserID)
	case event.TypingStopped:
		r.typing.Stopped(evt.UserID)
	}
	return nil
}

func (r *Router) handleMessage(m domain.Message) {
	if m.SenderID == r.self() {
		r.monitor.IncrSelfEchoesDropped()
		return
	}

	partner := m.SenderID
	if r.transcript.ActivePartner() == partner {
		if r.transcript.Append(m) {
			r.addToIndex(m)
		} else {
			r.monitor.IncrDuplicatesDropped()
			return
		}
	} else {
		r.unread.AddUnread(partner, m.SenderName, m.Content, m.CreatedAt)
	}

	r.upsertRecent(partner, m.SenderName, m.Content, m.CreatedAt)
}

// handleNotification covers the out-of-room delivery path. The payload has
// no message id, so the transcript's secondary heuristic is what protects
// against a double delivery with the in-room copy.
func (r *Router) handleNotification(n event.NotificationReceived) {
	if n.SenderID == r.self() {
		r.monitor.IncrSelfEchoesDropped()
		return
	}

	r.monitor.IncrNotifications()

	if r.transcript.ActivePartner() == n.SenderID {
		m := domain.Message{
			ID:         domain.ComposeMessageID(n.SenderID, r.self(), n.SentAt),
			Content:    n.Content,
			SenderID:   n.SenderID,
			SenderName: n.SenderName,
			CreatedAt:  n.SentAt,
		}
		if r.transcript.Append(m) {
			r.addToIndex(m)
		} else {
			r.monitor.IncrDuplicatesDropped()
			return
		}
	} else {
		r.unread.AddUnread(n.SenderID, n.SenderName, n.Content, n.SentAt)
	}

	r.upsertRecent(n.SenderID, n.SenderName, n.Content, n.SentAt)
}

func (r *Router) upsertRecent(partnerID, partnerName, content string, at time.Time) {
	r.recent.Upsert(partnerID, partnerName, content, at)
	if r.persist != nil {
		r.persist(domain.ConversationSummary{
			PartnerID:     partnerID,
			PartnerName:   partnerName,
			LastMessage:   content,
			LastTimestamp: at,
		})
	}
}

func (r *Router) addToIndex(m domain.Message) {
	if r.index != nil {
		r.index.Add(m)
	}
}

//go:generate go run go.uber.org/mock/mockgen -source=connection.go -destination=../mocks/mock_connection.go -package=mocks
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chatlink/auth"
	"chatlink/contract"
	"chatlink/domain"
	"chatlink/domain/event"
	"chatlink/errors"
	"chatlink/moderation"
	"chatlink/observability"
	"chatlink/projection"
	"chatlink/runtime/workers"
	"chatlink/search"
	"chatlink/store"
	"chatlink/transport"
	"chatlink/typing"
)

type IConnectionManager interface {
	Connect(ctx context.Context, token string) error
	JoinRoom(partnerID string) error
	OpenConversation(partnerID string) error
	CloseConversation()
	Send(targetID, targetName, content string) (domain.Message, error)
	StartTyping(partnerID string)
	StopTyping(partnerID string)
	Subscribe(sink contract.EventSink)
	State() domain.ConnectionState
	Disconnect()
}

// ConnectionManager owns the one authenticated real-time connection of a
// session and is the sole attachment point to the transport. Surfaces
// subscribe to its bus; none of them ever sees the transport.
type ConnectionManager struct {
	mu         sync.Mutex
	log        *slog.Logger
	transport  contract.Transport
	bus        *Bus
	router     *Router
	transcript *projection.Transcript
	unread     store.IUnreadStore
	recent     store.IRecentCache
	typing     *typing.Controller
	monitor    *observability.Monitor
	moderator  *moderation.Moderator
	index      *search.Index
	snapshot   *store.SnapshotRepository
	bufferSize int

	session    auth.Session
	state      domain.ConnectionState
	joined     map[string]struct{}
	supervisor contract.ISupervisor
	cancel     context.CancelFunc
}

func NewConnectionManager(log *slog.Logger, t contract.Transport,
	transcript *projection.Transcript, unread store.IUnreadStore, recent store.IRecentCache,
	typingCtl *typing.Controller, monitor *observability.Monitor, bufferSize int) *ConnectionManager {
	c := &ConnectionManager{
		log:        log,
		transport:  t,
		bus:        NewBus(log),
		transcript: transcript,
		unread:     unread,
		recent:     recent,
		typing:     typingCtl,
		monitor:    monitor,
		bufferSize: bufferSize,
		state:      domain.StateDisconnected,
	}
	c.router = NewRouter(log, c.localID, transcript, unread, recent, typingCtl, monitor)
	c.bus.Subscribe(c.router)
	return c
}

// WithModerator filters outbound content before it reaches the transport.
func (c *ConnectionManager) WithModerator(m *moderation.Moderator) *ConnectionManager {
	c.moderator = m
	return c
}

// WithSearchIndex mirrors every materialized transcript message into the
// session search index.
func (c *ConnectionManager) WithSearchIndex(index *search.Index) *ConnectionManager {
	c.index = index
	c.router.WithSearchIndex(index)
	return c
}

// WithSnapshot persists conversation summaries across sessions.
func (c *ConnectionManager) WithSnapshot(repo store.SnapshotRepository) *ConnectionManager {
	c.snapshot = &repo
	c.router.WithPersistence(c.persistSummary)
	return c
}

// Connect derives the session identity from the token, dials the transport
// and starts the supervised read pump and fanout. A missing or rejected
// token leaves the manager in the error state; no automatic
// re-authentication is attempted, the caller reconnects with a fresh token.
func (c *ConnectionManager) Connect(ctx context.Context, token string) error {
	session, err := auth.NewSession(token)
	if err != nil {
		c.setState(domain.StateError)
		return err
	}

	c.mu.Lock()
	if c.state == domain.StateConnected || c.state == domain.StateConnecting {
		c.mu.Unlock()
		return errors.ErrAlreadyConnected
	}
	prevCancel := c.cancel
	c.cancel = nil
	c.session = session
	c.mu.Unlock()

	// A previous run may still hold workers after a transport failure;
	// stop them before starting the new supervised run.
	if prevCancel != nil {
		prevCancel()
	}

	c.setState(domain.StateConnecting)
	c.monitor.IncrConnectAttempts()

	if err := c.transport.Dial(ctx, token); err != nil {
		c.setState(domain.StateError)
		return err
	}

	if c.snapshot != nil {
		c.snapshot.Restore(session.UserID, c.recent)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	events := make(chan event.DomainEvent, c.bufferSize)
	supervisor := workers.NewSupervisor(c.log)
	supervisor.Add(
		workers.NewReadPump(c.log, c.transport, events, c.monitor, c.onTransportFailure),
		workers.NewEventFanout(c.log, events, c.bus),
	)

	c.mu.Lock()
	c.cancel = cancel
	c.supervisor = supervisor
	c.joined = make(map[string]struct{})
	c.mu.Unlock()

	go supervisor.Run(runCtx)

	c.setState(domain.StateConnected)
	c.log.Info("Session connected", "user", session.UserID)
	return nil
}

// JoinRoom emits the join intent for the conversation room shared with a
// partner. Joining an already-joined room is a no-op.
func (c *ConnectionManager) JoinRoom(partnerID string) error {
	c.mu.Lock()
	if c.state != domain.StateConnected {
		c.mu.Unlock()
		return errors.ErrNotConnected
	}
	self := c.session.UserID
	if _, ok := c.joined[partnerID]; ok {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	frame, err := transport.JoinFrame(self, partnerID)
	if err != nil {
		return err
	}
	if err := c.transport.WriteFrame(frame); err != nil {
		return err
	}
	c.monitor.IncrFramesOut()

	c.mu.Lock()
	c.joined[partnerID] = struct{}{}
	c.mu.Unlock()
	return nil
}

// OpenConversation makes a partner's transcript the active view: the room
// is joined, their unread bucket is removed wholesale, and subsequent
// messages from them route to the transcript instead of unread state.
func (c *ConnectionManager) OpenConversation(partnerID string) error {
	if err := c.JoinRoom(partnerID); err != nil {
		return err
	}
	c.transcript.SetActivePartner(partnerID)
	c.unread.MarkRead(partnerID)
	return nil
}

// CloseConversation deactivates the transcript; inbound messages go back
// to creating unread buckets.
func (c *ConnectionManager) CloseConversation() {
	c.transcript.Close()
}

// Send is the optimistic-send path: the message is written to the
// transport fire-and-forget and materialized locally at the same moment.
// There is no acknowledgment wait and no retry; the registered id is what
// makes the later server echo a recognized duplicate.
func (c *ConnectionManager) Send(targetID, targetName, content string) (domain.Message, error) {
	c.mu.Lock()
	state, session := c.state, c.session
	c.mu.Unlock()
	if state != domain.StateConnected {
		return domain.Message{}, errors.ErrNotConnected
	}

	if c.moderator != nil {
		content = c.moderator.Censor(content)
	}

	m, err := domain.NewMessage(session.UserID, session.FullName, targetID, content, time.Now())
	if err != nil {
		return domain.Message{}, err
	}

	frame, err := transport.MessageFrame(m)
	if err != nil {
		return domain.Message{}, err
	}
	if err := c.transport.WriteFrame(frame); err != nil {
		c.log.Warn("Send not delivered", "target", targetID, "error", err)
	} else {
		c.monitor.IncrFramesOut()
	}

	if c.transcript.ActivePartner() == targetID {
		if c.transcript.Append(m) && c.index != nil {
			c.index.Add(m)
		}
	}
	c.recent.Upsert(targetID, targetName, m.Content, m.CreatedAt)
	c.persistSummary(domain.ConversationSummary{
		PartnerID:     targetID,
		PartnerName:   targetName,
		LastMessage:   m.Content,
		LastTimestamp: m.CreatedAt,
	})

	return m, nil
}

// StartTyping signals the partner's room; fire-and-forget like Send.
func (c *ConnectionManager) StartTyping(partnerID string) {
	c.signalTyping(transport.EventTyping, partnerID)
}

func (c *ConnectionManager) StopTyping(partnerID string) {
	c.signalTyping(transport.EventStopTyping, partnerID)
}

// Subscribe attaches a sink to the session bus. The router is always the
// first subscriber, so stores are updated before any observer runs.
func (c *ConnectionManager) Subscribe(sink contract.EventSink) {
	c.bus.Subscribe(sink)
}

func (c *ConnectionManager) State() domain.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *ConnectionManager) Session() auth.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Disconnect is the scoped teardown: workers stop, the transport is
// released, every pending typing timer is cancelled and externally
// subscribed sinks detach. The internal router stays attached so a later
// Connect on the same manager routes again.
func (c *ConnectionManager) Disconnect() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.supervisor = nil
	c.joined = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	_ = c.transport.Close()
	c.typing.Stop()
	c.transcript.Close()
	c.setState(domain.StateDisconnected)
	c.bus.Clear()
	c.bus.Subscribe(c.router)
	c.log.Info("Session disconnected")
}

func (c *ConnectionManager) localID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.UserID
}

func (c *ConnectionManager) setState(state domain.ConnectionState) {
	c.mu.Lock()
	if c.state == state {
		c.mu.Unlock()
		return
	}
	c.state = state
	c.mu.Unlock()
	c.bus.Publish(context.Background(), event.StateChanged{State: state, At: time.Now()})
}

// onTransportFailure marks the attempt terminal. Message input stays
// disabled until the caller reconnects with a fresh token.
func (c *ConnectionManager) onTransportFailure(err error) {
	c.log.Warn("Connection lost", "error", err)
	c.typing.Stop()
	c.setState(domain.StateError)
}

func (c *ConnectionManager) signalTyping(eventName, partnerID string) {
	c.mu.Lock()
	state, self := c.state, c.session.UserID
	c.mu.Unlock()
	if state != domain.StateConnected {
		return
	}

	frame, err := transport.TypingFrame(eventName, self, partnerID)
	if err != nil {
		return
	}
	if err := c.transport.WriteFrame(frame); err != nil {
		c.log.Debug("Typing signal not delivered", "partner", partnerID, "error", err)
		return
	}
	c.monitor.IncrFramesOut()
}

func (c *ConnectionManager) persistSummary(s domain.ConversationSummary) {
	if c.snapshot == nil {
		return
	}
	if err := c.snapshot.Save(c.localID(), s); err != nil {
		c.log.Warn("Conversation snapshot write failed", "partner", s.PartnerID, "error", err)
	}
}

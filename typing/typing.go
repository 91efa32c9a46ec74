// Package typing tracks the ephemeral "is typing" state per partner.
// State is self-expiring: without a stop event it returns to idle on its own.
package typing

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultExpiry is how long a typing indicator survives without renewal.
const DefaultExpiry = 3 * time.Second

// Controller owns one expiry timer per typing partner. Every timer is a
// cancellable handle registered under the mutex, so Stop can release all of
// them when the session tears down and no stale timer fires afterwards.
type Controller struct {
	mu     sync.Mutex
	log    *slog.Logger
	expiry time.Duration
	timers map[string]*time.Timer
	typing map[string]struct{}
}

func NewController(expiry time.Duration, log *slog.Logger) *Controller {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Controller{
		log:    log,
		expiry: expiry,
		timers: make(map[string]*time.Timer),
		typing: make(map[string]struct{}),
	}
}

// Started transitions a partner to typing and (re)arms their expiry timer,
// cancelling any previous one.
func (c *Controller) Started(partnerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[partnerID]; ok {
		t.Stop()
	}
	c.typing[partnerID] = struct{}{}
	c.timers[partnerID] = time.AfterFunc(c.expiry, func() {
		c.expire(partnerID)
	})
}

// Stopped transitions a partner back to idle and releases their timer.
func (c *Controller) Stopped(partnerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear(partnerID)
}

// IsTyping reports whether a partner is currently typing.
func (c *Controller) IsTyping(partnerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.typing[partnerID]
	return ok
}

// Stop cancels every pending timer. Called on Disconnect so nothing fires
// after the owning session is gone.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.typing = make(map[string]struct{})
	c.log.Debug("Typing timers released")
}

func (c *Controller) expire(partnerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear(partnerID)
	c.log.Debug("Typing indicator expired", "partner", partnerID)
}

// clear removes state for one partner. Caller holds the lock.
func (c *Controller) clear(partnerID string) {
	if t, ok := c.timers[partnerID]; ok {
		t.Stop()
		delete(c.timers, partnerID)
	}
	delete(c.typing, partnerID)
}

// Package projection builds local views from observed messages.
// Handles ordering, deduplication, and the active-conversation transcript.
// Does not emit events or interact with UI directly.
package projection

import (
	"sync"
	"time"

	"chatlink/domain"
)

// Transcript holds the message list of the currently open conversation.
// At most one partner is active at a time; switching partners clears the
// list and the dedup state with it.
type Transcript struct {
	mu            sync.RWMutex
	activePartner string
	messages      []domain.Message
	dedup         *Deduplicator
}

func NewTranscript(dedupWindow time.Duration) *Transcript {
	return &Transcript{dedup: NewDeduplicator(dedupWindow)}
}

// SetActivePartner opens the conversation with a partner. Opening a
// different partner discards the previous transcript.
func (t *Transcript) SetActivePartner(partnerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.activePartner == partnerID {
		return
	}
	t.activePartner = partnerID
	t.messages = nil
	t.dedup.Reset()
}

// ActivePartner returns the partner whose conversation is open, or "".
func (t *Transcript) ActivePartner() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activePartner
}

// Append materializes a message unless the deduplicator already knows it.
// Both the optimistic-send path and the inbound path land here, which is
// what makes a server echo of a just-sent message safe.
func (t *Transcript) Append(m domain.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dedup.IsDuplicate(m) {
		return false
	}
	t.dedup.Register(m)
	t.messages = append(t.messages, m)
	return true
}

func (t *Transcript) Messages() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Close deactivates the transcript, after which every inbound message
// routes to the unread store again.
func (t *Transcript) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activePartner = ""
	t.messages = nil
	t.dedup.Reset()
}
